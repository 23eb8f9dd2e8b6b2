package pricing

import (
	"fmt"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// ManualStrategy uses an explicit unit price per period; periods without one cost nothing.
type ManualStrategy struct {
	Values series.Series
}

func newManual(p scenario.Price) (*ManualStrategy, error) {
	values := make(series.Series, len(p.Values))
	for period, text := range p.Values {
		v, ok, err := optionalValue(fmt.Sprintf("values[%s]", period), text)
		if err != nil {
			return nil, err
		}
		if ok {
			values[period] = v
		}
	}
	return &ManualStrategy{Values: values}, nil
}

func (s *ManualStrategy) Name() scenario.PriceType { return scenario.PriceManual }

func (s *ManualStrategy) Calculate(ctx Context) (series.Series, error) {
	out := series.Zero(ctx.Periods)
	for _, p := range ctx.Periods {
		out[p] = ctx.Quantities[p] * s.Values[p]
	}
	return out, nil
}
