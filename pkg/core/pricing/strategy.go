// Package pricing turns one category's price configuration and quantities into a
// per-period monetary series.
//
// Five price types exist (constant, manual, revenue, investment, salary). Each is
// a Strategy; Resolve picks and parses the right one from a scenario.Price.
package pricing

import (
	"fmt"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
	"scenario_projection/pkg/core/units"
)

// =============================================================================
// STRATEGY INTERFACE
// =============================================================================

// Context provides the inputs a strategy needs for one category.
type Context struct {
	Periods []string // requested window, in order

	// Quantities holds only the periods with a defined quantity.
	Quantities series.Series

	// RevenueTotals are the per-category totals of every revenue category.
	// nil means the caller did not compute them.
	RevenueTotals []CategoryTotals
}

// CategoryTotals is a category together with its computed series.
type CategoryTotals struct {
	ID       string            `json:"id"`
	Category scenario.Category `json:"category"`
	Totals   series.Series     `json:"totals"`
}

// Strategy is one pricing model.
type Strategy interface {
	// Name returns the price type this strategy implements.
	Name() scenario.PriceType

	// Calculate returns a series over ctx.Periods.
	Calculate(ctx Context) (series.Series, error)
}

// =============================================================================
// DISPATCH
// =============================================================================

// Resolve parses price into its strategy.
func Resolve(price scenario.Price) (Strategy, error) {
	switch price.Type {
	case scenario.PriceConstant:
		return newConstant(price)
	case scenario.PriceManual:
		return newManual(price)
	case scenario.PriceRevenue:
		return newRevenue(price)
	case scenario.PriceInvestment:
		return newInvestment(price)
	case scenario.PriceSalary:
		return newSalary(price)
	default:
		return nil, &ErrUnknownPriceType{Type: price.Type, Valid: scenario.PriceTypes}
	}
}

// CalculatePrices computes the monetary series of one category over periods.
// revenueTotals is only consulted by revenue-priced categories.
func CalculatePrices(category scenario.Category, periods []string, revenueTotals []CategoryTotals) (series.Series, error) {
	strategy, err := Resolve(category.Price)
	if err != nil {
		return nil, wrapCategory(category, err)
	}
	quantities, err := ParseQuantities(category.Quantities)
	if err != nil {
		return nil, wrapCategory(category, err)
	}
	out, err := strategy.Calculate(Context{
		Periods:       periods,
		Quantities:    quantities,
		RevenueTotals: revenueTotals,
	})
	if err != nil {
		return nil, wrapCategory(category, err)
	}
	return out, nil
}

// ParseQuantities parses the defined quantities; blank entries are left out.
func ParseQuantities(quantities map[string]scenario.Text) (series.Series, error) {
	out := make(series.Series, len(quantities))
	for p, text := range quantities {
		if units.IsBlank(text.String()) {
			continue
		}
		v, err := units.ParseValue(text.String())
		if err != nil {
			return nil, fmt.Errorf("quantity for period %s: %w", p, err)
		}
		out[p] = v
	}
	return out, nil
}

func wrapCategory(c scenario.Category, err error) error {
	name := c.Label
	if name == "" {
		name = c.ID
	}
	return fmt.Errorf("category %q: %w", name, err)
}

// optionalValue parses text with ParseValue; ok is false when text is blank.
func optionalValue(field string, text scenario.Text) (v float64, ok bool, err error) {
	if units.IsBlank(text.String()) {
		return 0, false, nil
	}
	v, err = units.ParseValue(text.String())
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", field, err)
	}
	return v, true, nil
}

// optionalPercentage parses text with ParsePercentage; ok is false when text is blank.
func optionalPercentage(field string, text scenario.Text) (v float64, ok bool, err error) {
	if units.IsBlank(text.String()) {
		return 0, false, nil
	}
	v, err = units.ParsePercentage(text.String())
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", field, err)
	}
	return v, true, nil
}
