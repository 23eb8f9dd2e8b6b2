package projection

import (
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// Cashflow derives the cashflow statement. Working capital changes, investing
// flows and the net cashflow have no formula yet; they are returned as
// placeholders with an empty series.
func Cashflow(s scenario.Scenario) ([]string, []LineItem, error) {
	w, err := newWindow(s)
	if err != nil {
		return nil, nil, err
	}
	pl, err := computeProfitAndLoss(s, w)
	if err != nil {
		return nil, nil, err
	}

	equity, err := parseEntries("equityContributions", s.Financing.EquityContributions, w.periods)
	if err != nil {
		return nil, nil, err
	}
	loans, err := parseEntries("bankLoansCapitalCalls", s.Financing.BankLoansCapitalCalls, w.periods)
	if err != nil {
		return nil, nil, err
	}
	other, err := parseEntries("otherSourcesOfFinance", s.Financing.OtherSourcesOfFinance, w.periods)
	if err != nil {
		return nil, nil, err
	}

	return w.periods, []LineItem{
		item("netResult", "Net result", pl.NetResult),
		item("depreciation", "Depreciation", pl.Depreciation),
		emptyPlaceholder("changeInWorkingCapital", "Change in working capital"),
		total("operatingCashflow", "Operating cashflow", series.Add(pl.NetResult, pl.Depreciation)),
		emptyPlaceholder("investments", "Investments"),
		emptyPlaceholder("investingCashflow", "Investing cashflow"),
		item("equityContributions", "Equity contributions", equity),
		item("bankLoansCapitalCalls", "Bank loans (capital calls)", loans),
		item("otherSourcesOfFinance", "Other sources of finance", other),
		total("financingCashflow", "Financing cashflow", series.Sum([]series.Series{equity, loans, other})),
		emptyPlaceholder("netCashflow", "Net cashflow"),
	}, nil
}
