// Package calc aggregates per-category price series into section, group and grand totals.
//
// Revenue-priced categories depend on revenue totals, so every total here is computed
// in two phases: RevenueTotals first (without revenue totals), then everything else.
package calc

import (
	"scenario_projection/pkg/core/pricing"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// TotalsPerCategory maps each category through its price strategy.
func TotalsPerCategory(categories []scenario.Category, periods []string, revenueTotals []pricing.CategoryTotals) ([]pricing.CategoryTotals, error) {
	out := make([]pricing.CategoryTotals, 0, len(categories))
	for _, c := range categories {
		totals, err := pricing.CalculatePrices(c, periods, revenueTotals)
		if err != nil {
			return nil, err
		}
		out = append(out, pricing.CategoryTotals{ID: c.ID, Category: c, Totals: totals})
	}
	return out, nil
}

// Totals sums the categories element-wise. The result always covers every period,
// so an empty category list yields zeros.
func Totals(categories []scenario.Category, periods []string, revenueTotals []pricing.CategoryTotals) (series.Series, error) {
	perCategory, err := TotalsPerCategory(categories, periods, revenueTotals)
	if err != nil {
		return nil, err
	}
	return sumTotals(perCategory, periods), nil
}

// RevenueTotals computes phase one: the totals of every active revenue category.
func RevenueTotals(s scenario.Scenario, periods []string) ([]pricing.CategoryTotals, error) {
	// Revenue categories priced as a share of revenue get an empty, non-nil list
	// so they compute to zero without the missing-totals warning.
	return TotalsPerCategory(s.CategoriesBySection(scenario.SectionRevenues), periods, []pricing.CategoryTotals{})
}

// SectionTotals sums the active categories of one section.
func SectionTotals(s scenario.Scenario, section scenario.Section, periods []string, revenueTotals []pricing.CategoryTotals) (series.Series, error) {
	return Totals(s.CategoriesBySection(section), periods, revenueTotals)
}

// GroupTotals sums the active categories of one section and group.
func GroupTotals(s scenario.Scenario, section scenario.Section, group string, periods []string, revenueTotals []pricing.CategoryTotals) (series.Series, error) {
	return Totals(s.CategoriesByGroup(section, group), periods, revenueTotals)
}

// SumRevenue returns the grand total of a phase-one result.
func SumRevenue(revenueTotals []pricing.CategoryTotals, periods []string) series.Series {
	return sumTotals(revenueTotals, periods)
}

// AssetValues sums the book values of investment-priced categories.
func AssetValues(categories []scenario.Category, periods []string) (series.Series, error) {
	out := series.Zero(periods)
	for _, c := range categories {
		book, err := pricing.CalculateAssetValue(c, periods)
		if err != nil {
			return nil, err
		}
		out = series.Add(out, book)
	}
	return out, nil
}

func sumTotals(list []pricing.CategoryTotals, periods []string) series.Series {
	out := series.Zero(periods)
	for _, ct := range list {
		out = series.Add(out, ct.Totals)
	}
	return out
}
