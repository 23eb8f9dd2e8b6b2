package pricing

import (
	"math"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// MonthsPerPeriod converts a monthly salary into a period amount.
const MonthsPerPeriod = 12

// SalaryStrategy grosses a monthly salary up by holiday provision and employer
// social security contributions, then grows it like ConstantStrategy.
type SalaryStrategy struct {
	Value            float64
	Change           float64
	HolidayProvision float64
	SSCEmployer      float64
	unset            bool
}

func newSalary(p scenario.Price) (*SalaryStrategy, error) {
	value, hasValue, err := optionalValue("value", p.Value)
	if err != nil {
		return nil, err
	}
	change, _, err := optionalPercentage("change", p.Change)
	if err != nil {
		return nil, err
	}
	holiday, _, err := optionalPercentage("holidayProvision", p.HolidayProvision)
	if err != nil {
		return nil, err
	}
	ssc, _, err := optionalPercentage("SSCEmployer", p.SSCEmployer)
	if err != nil {
		return nil, err
	}
	return &SalaryStrategy{
		Value:            value,
		Change:           change,
		HolidayProvision: holiday,
		SSCEmployer:      ssc,
		unset:            !hasValue,
	}, nil
}

func (s *SalaryStrategy) Name() scenario.PriceType { return scenario.PriceSalary }

func (s *SalaryStrategy) Calculate(ctx Context) (series.Series, error) {
	out := series.Zero(ctx.Periods)
	if s.unset {
		return out, nil
	}
	burden := (1 + s.HolidayProvision) * (1 + s.SSCEmployer)
	for i, p := range ctx.Periods {
		out[p] = ctx.Quantities[p] * MonthsPerPeriod * s.Value * math.Pow(1+s.Change, float64(i)) * burden
	}
	return out, nil
}
