package pricing

import (
	"math"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// ConstantStrategy grows a unit price by a fixed percentage per period.
// Formula: q(p_i) * value * (1+change)^i, i counted from the first requested period.
type ConstantStrategy struct {
	Value  float64
	Change float64
	unset  bool
}

func newConstant(p scenario.Price) (*ConstantStrategy, error) {
	value, hasValue, err := optionalValue("value", p.Value)
	if err != nil {
		return nil, err
	}
	change, hasChange, err := optionalPercentage("change", p.Change)
	if err != nil {
		return nil, err
	}
	return &ConstantStrategy{Value: value, Change: change, unset: !hasValue || !hasChange}, nil
}

func (s *ConstantStrategy) Name() scenario.PriceType { return scenario.PriceConstant }

func (s *ConstantStrategy) Calculate(ctx Context) (series.Series, error) {
	out := series.Zero(ctx.Periods)
	if s.unset {
		return out, nil
	}
	for i, p := range ctx.Periods {
		out[p] = ctx.Quantities[p] * s.Value * math.Pow(1+s.Change, float64(i))
	}
	return out, nil
}
