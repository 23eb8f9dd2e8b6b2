package pricing

import (
	"math"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// InvestmentStrategy depreciates acquisitions straight-line with a half charge in
// the acquisition period. The quantity of a period is the number of units bought in it.
type InvestmentStrategy struct {
	Value              float64
	DepreciationPeriod float64
}

func newInvestment(p scenario.Price) (*InvestmentStrategy, error) {
	value, _, err := optionalValue("value", p.Value)
	if err != nil {
		return nil, err
	}
	dp, _, err := optionalValue("depreciationPeriod", p.DepreciationPeriod)
	if err != nil {
		return nil, err
	}
	return &InvestmentStrategy{Value: value, DepreciationPeriod: dp}, nil
}

func (s *InvestmentStrategy) Name() scenario.PriceType { return scenario.PriceInvestment }

// Calculate returns the depreciation charge per period.
func (s *InvestmentStrategy) Calculate(ctx Context) (series.Series, error) {
	charges, _ := s.schedule(ctx)
	return charges, nil
}

// BookValue returns the remaining asset value after each period's charge.
func (s *InvestmentStrategy) BookValue(ctx Context) series.Series {
	_, book := s.schedule(ctx)
	return book
}

func (s *InvestmentStrategy) schedule(ctx Context) (charges, book series.Series) {
	charges = series.Zero(ctx.Periods)
	book = series.Zero(ctx.Periods)
	if s.DepreciationPeriod <= 0 {
		return charges, book
	}
	steps := int(math.Ceil(s.DepreciationPeriod))

	for a, acquired := range ctx.Periods {
		q, ok := ctx.Quantities[acquired]
		if !ok {
			continue
		}
		cost := s.Value * q
		perPeriod := cost / s.DepreciationPeriod
		remaining := cost

		for j := a; j < len(ctx.Periods); j++ {
			p := ctx.Periods[j]
			if step := j - a; step < steps && remaining > 0 {
				charge := perPeriod
				if step == 0 {
					charge = perPeriod / 2
				}
				charge = math.Min(charge, remaining)
				remaining -= charge
				charges[p] += charge
			}
			book[p] += remaining
		}
	}
	return charges, book
}

// CalculateAssetValue returns the book value series of an investment-priced category.
// Categories with another price type have no book value.
func CalculateAssetValue(category scenario.Category, periods []string) (series.Series, error) {
	if category.Price.Type != scenario.PriceInvestment {
		return series.Zero(periods), nil
	}
	s, err := newInvestment(category.Price)
	if err != nil {
		return nil, wrapCategory(category, err)
	}
	quantities, err := ParseQuantities(category.Quantities)
	if err != nil {
		return nil, wrapCategory(category, err)
	}
	return s.BookValue(Context{Periods: periods, Quantities: quantities}), nil
}
