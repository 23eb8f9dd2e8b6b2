package projection

import (
	"math"

	"scenario_projection/pkg/core/calc"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// BalanceSheet derives the balance sheet over periods with initial. The initial
// column holds the opening figures. Working capital, cash and equity have no
// formula yet and are zero-valued placeholders, so "balance" is only zero once
// those rows are populated.
func BalanceSheet(s scenario.Scenario) ([]string, []LineItem, error) {
	w, err := newWindow(s)
	if err != nil {
		return nil, nil, err
	}
	pl, err := computeProfitAndLoss(s, w)
	if err != nil {
		return nil, nil, err
	}
	opening := s.InitialBalance

	intangible, err := assetLine(s.CategoriesByGroup(scenario.SectionInvestments, scenario.GroupIntangible),
		"initialBalance.intangibleAssets", opening.IntangibleAssets, w)
	if err != nil {
		return nil, nil, err
	}
	tangible, err := assetLine(tangibleCategories(s),
		"initialBalance.tangibleAssets", opening.TangibleAssets, w)
	if err != nil {
		return nil, nil, err
	}

	openingFinancial, err := optionalValue("initialBalance.financialFixedAssets", opening.FinancialFixedAssets)
	if err != nil {
		return nil, nil, err
	}
	participations, err := parseEntries("investmentsInParticipations", s.Financing.InvestmentsInParticipations, w.periods)
	if err != nil {
		return nil, nil, err
	}
	financial := withOpening(w.initial, openingFinancial, running(w.periods, participations, openingFinancial), w.periods)

	openingDeferredTax, err := optionalValue("initialBalance.deferredTaxAsset", opening.DeferredTaxAsset)
	if err != nil {
		return nil, nil, err
	}
	cumulativeEBT := running(w.periods, pl.EBT, 0)
	deferredTax := series.Map(cumulativeEBT, func(_ string, v float64) float64 {
		return math.Max(0, -v) * pl.TaxRate
	})
	deferredTax = withOpening(w.initial, openingDeferredTax, deferredTax, w.periods)

	fixedAssets := series.Sum([]series.Series{intangible, tangible, financial, deferredTax})

	inventory := zeroPlaceholder("inventory", "Inventory", w.withInitial)
	receivables := zeroPlaceholder("accountsReceivable", "Accounts receivable", w.withInitial)
	cash := zeroPlaceholder("cash", "Cash", w.withInitial)
	currentAssets := series.Sum([]series.Series{inventory.Values, receivables.Values, cash.Values})
	totalAssets := series.Add(fixedAssets, currentAssets)

	equity := zeroPlaceholder("equity", "Equity", w.withInitial)
	payables := zeroPlaceholder("accountsPayable", "Accounts payable", w.withInitial)
	shortTermDebt := zeroPlaceholder("shortTermDebt", "Short-term debt", w.withInitial)
	totalLiabilities := series.Sum([]series.Series{equity.Values, payables.Values, shortTermDebt.Values, pl.LongTermDebt})

	return w.withInitial, []LineItem{
		item("intangibleAssets", "Intangible assets", intangible),
		item("tangibleAssets", "Tangible assets", tangible),
		item("financialFixedAssets", "Financial fixed assets", financial),
		item("deferredTaxAsset", "Deferred tax asset", deferredTax),
		total("fixedAssets", "Fixed assets", fixedAssets),
		inventory,
		receivables,
		cash,
		total("currentAssets", "Current assets", currentAssets),
		grandTotal("totalAssets", "Total assets", totalAssets),
		equity,
		item("longTermDebt", "Long-term debt", pl.LongTermDebt),
		payables,
		shortTermDebt,
		grandTotal("totalLiabilities", "Total liabilities", totalLiabilities),
		total("balance", "Balance", series.Subtract(totalAssets, totalLiabilities)),
	}, nil
}

// assetLine is the opening value carried forward plus the book value of the
// categories' acquisitions.
func assetLine(categories []scenario.Category, field string, openingText scenario.Text, w window) (series.Series, error) {
	opening, err := optionalValue(field, openingText)
	if err != nil {
		return nil, err
	}
	book, err := calc.AssetValues(categories, w.periods)
	if err != nil {
		return nil, err
	}
	carried := series.Map(book, func(_ string, v float64) float64 { return v + opening })
	return withOpening(w.initial, opening, carried, w.periods), nil
}

// tangibleCategories is every investment that is not intangible.
func tangibleCategories(s scenario.Scenario) []scenario.Category {
	var out []scenario.Category
	for _, c := range s.CategoriesBySection(scenario.SectionInvestments) {
		if c.Group != scenario.GroupIntangible {
			out = append(out, c)
		}
	}
	return out
}
