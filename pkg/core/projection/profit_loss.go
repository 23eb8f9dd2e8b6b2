package projection

import (
	"scenario_projection/pkg/core/calc"
	"scenario_projection/pkg/core/period"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// window holds the period sequences of one computation.
type window struct {
	periods     []string
	initial     string
	withInitial []string
}

func newWindow(s scenario.Scenario) (window, error) {
	periods, err := period.GetPeriods(s.Parameters)
	if err != nil {
		return window{}, err
	}
	initial, err := period.Initial(s.Parameters)
	if err != nil {
		return window{}, err
	}
	return window{
		periods:     periods,
		initial:     initial,
		withInitial: append([]string{initial}, periods...),
	}, nil
}

// profitAndLoss holds every intermediate series of the P&L.
type profitAndLoss struct {
	Revenues       series.Series
	DirectCosts    series.Series
	PersonnelCosts series.Series
	IndirectCosts  series.Series
	GrossMargin    series.Series
	EBITDA         series.Series
	Depreciation   series.Series
	EBIT           series.Series
	LongTermDebt   series.Series // over periods with initial
	Interest       series.Series
	EBT            series.Series
	CorporateTaxes series.Series
	NetResult      series.Series

	TaxRate float64
}

func computeProfitAndLoss(s scenario.Scenario, w window) (*profitAndLoss, error) {
	taxRate, err := optionalPercentage("corporateTaxRate", s.Parameters.CorporateTaxRate)
	if err != nil {
		return nil, err
	}
	interestRate, err := optionalPercentage("interestPayableOnLoans", s.Parameters.InterestPayableOnLoans)
	if err != nil {
		return nil, err
	}

	// Phase 1: revenue, needed by revenue-priced costs.
	revenueTotals, err := calc.RevenueTotals(s, w.periods)
	if err != nil {
		return nil, err
	}
	pl := &profitAndLoss{TaxRate: taxRate}
	pl.Revenues = calc.SumRevenue(revenueTotals, w.periods)

	// Phase 2: everything else.
	if pl.DirectCosts, err = calc.GroupTotals(s, scenario.SectionCosts, scenario.GroupDirect, w.periods, revenueTotals); err != nil {
		return nil, err
	}
	if pl.PersonnelCosts, err = calc.GroupTotals(s, scenario.SectionCosts, scenario.GroupPersonnel, w.periods, revenueTotals); err != nil {
		return nil, err
	}
	if pl.IndirectCosts, err = calc.GroupTotals(s, scenario.SectionCosts, scenario.GroupIndirect, w.periods, revenueTotals); err != nil {
		return nil, err
	}
	if pl.Depreciation, err = calc.SectionTotals(s, scenario.SectionInvestments, w.periods, revenueTotals); err != nil {
		return nil, err
	}

	pl.GrossMargin = series.Subtract(pl.Revenues, pl.DirectCosts)
	pl.EBITDA = series.Subtract(series.Subtract(pl.GrossMargin, pl.PersonnelCosts), pl.IndirectCosts)
	pl.EBIT = series.Subtract(pl.EBITDA, pl.Depreciation)

	if pl.LongTermDebt, err = longTermDebt(s, w); err != nil {
		return nil, err
	}
	pl.Interest = series.Zero(w.periods)
	for i, p := range w.periods {
		prev := w.withInitial[i]
		avg := series.Average([]series.Series{
			{p: pl.LongTermDebt[prev]},
			{p: pl.LongTermDebt[p]},
		})
		pl.Interest[p] = avg[p] * interestRate
	}

	pl.EBT = series.Subtract(pl.EBIT, pl.Interest)
	pl.CorporateTaxes = series.MultiplyWithScalar(pl.EBT, taxRate)
	pl.NetResult = series.Subtract(pl.EBT, pl.CorporateTaxes)
	return pl, nil
}

// longTermDebt is the opening debt plus the running sum of bank loans and other
// sources of finance, over periods with initial.
func longTermDebt(s scenario.Scenario, w window) (series.Series, error) {
	opening, err := optionalValue("initialBalance.longTermDebt", s.InitialBalance.LongTermDebt)
	if err != nil {
		return nil, err
	}
	loans, err := parseEntries("bankLoansCapitalCalls", s.Financing.BankLoansCapitalCalls, w.periods)
	if err != nil {
		return nil, err
	}
	other, err := parseEntries("otherSourcesOfFinance", s.Financing.OtherSourcesOfFinance, w.periods)
	if err != nil {
		return nil, err
	}
	return withOpening(w.initial, opening, running(w.periods, series.Add(loans, other), opening), w.periods), nil
}

// ProfitAndLoss derives the profit & loss line items.
func ProfitAndLoss(s scenario.Scenario) ([]string, []LineItem, error) {
	w, err := newWindow(s)
	if err != nil {
		return nil, nil, err
	}
	pl, err := computeProfitAndLoss(s, w)
	if err != nil {
		return nil, nil, err
	}
	return w.periods, []LineItem{
		item("revenues", "Revenues", pl.Revenues),
		item("directCosts", "Direct costs", pl.DirectCosts),
		total("grossMargin", "Gross margin", pl.GrossMargin),
		item("personnelCosts", "Personnel costs", pl.PersonnelCosts),
		item("indirectCosts", "Indirect costs", pl.IndirectCosts),
		total("EBITDA", "EBITDA", pl.EBITDA),
		item("depreciation", "Depreciation", pl.Depreciation),
		total("EBIT", "EBIT", pl.EBIT),
		item("interest", "Interest", pl.Interest),
		total("EBT", "EBT", pl.EBT),
		item("corporateTaxes", "Corporate taxes", pl.CorporateTaxes),
		grandTotal("netResult", "Net result", pl.NetResult),
	}, nil
}
