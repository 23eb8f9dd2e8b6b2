// Package period generates the ordered period identifiers every computation runs over.
package period

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/units"
)

// MaxPeriods caps numberOfPeriods.
const MaxPeriods = 100

// DefaultStartingPeriod is used when the scenario leaves startingPeriod empty.
const DefaultStartingPeriod = 1

// GetPeriods returns start, start+1, ... for numberOfPeriods entries.
func GetPeriods(params scenario.Parameters) ([]string, error) {
	start, err := startingPeriod(params)
	if err != nil {
		return nil, err
	}
	count, err := numberOfPeriods(params)
	if err != nil {
		return nil, err
	}

	periods := make([]string, 0, count)
	for i := 0; i < count; i++ {
		periods = append(periods, strconv.Itoa(start+i))
	}
	return periods, nil
}

// GetPeriodsWithInitial prepends the opening-balance period start-1.
func GetPeriodsWithInitial(params scenario.Parameters) ([]string, error) {
	periods, err := GetPeriods(params)
	if err != nil {
		return nil, err
	}
	initial, err := Initial(params)
	if err != nil {
		return nil, err
	}
	return append([]string{initial}, periods...), nil
}

// Initial returns the opening-balance period identifier.
func Initial(params scenario.Parameters) (string, error) {
	start, err := startingPeriod(params)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(start - 1), nil
}

func startingPeriod(params scenario.Parameters) (int, error) {
	if units.IsBlank(params.StartingPeriod.String()) {
		return DefaultStartingPeriod, nil
	}
	v, err := units.ParseValue(params.StartingPeriod.String())
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, &units.ErrInvalidValue{Text: params.StartingPeriod.String()}
	}
	return int(v), nil
}

func numberOfPeriods(params scenario.Parameters) (int, error) {
	if units.IsBlank(params.NumberOfPeriods.String()) {
		return 0, nil
	}
	v, err := units.ParseValue(params.NumberOfPeriods.String())
	if err != nil {
		return 0, err
	}
	// Compare as float: int conversion of a huge count wraps negative.
	if v > MaxPeriods {
		zap.L().Warn("numberOfPeriods exceeds maximum, clamping",
			zap.Float64("requested", v),
			zap.Int("max", MaxPeriods))
		return MaxPeriods, nil
	}
	if v < 0 {
		return 0, nil
	}
	return int(v), nil
}
