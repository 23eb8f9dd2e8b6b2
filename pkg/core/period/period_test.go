package period

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/units"
)

func TestGetPeriods(t *testing.T) {
	tests := []struct {
		name   string
		params scenario.Parameters
		want   []string
	}{
		{"three years", scenario.Parameters{StartingPeriod: "2016", NumberOfPeriods: "3"}, []string{"2016", "2017", "2018"}},
		{"default start", scenario.Parameters{NumberOfPeriods: "2"}, []string{"1", "2"}},
		{"no count", scenario.Parameters{StartingPeriod: "2016"}, []string{}},
		{"negative count", scenario.Parameters{StartingPeriod: "2016", NumberOfPeriods: "-2"}, []string{}},
		{"fractional count truncated", scenario.Parameters{StartingPeriod: "2020", NumberOfPeriods: "2.7"}, []string{"2020", "2021"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetPeriods(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPeriods_Clamped(t *testing.T) {
	got, err := GetPeriods(scenario.Parameters{StartingPeriod: "2000", NumberOfPeriods: "250"})
	require.NoError(t, err)
	assert.Len(t, got, MaxPeriods)
	assert.Equal(t, "2000", got[0])
	assert.Equal(t, "2099", got[len(got)-1])
}

func TestGetPeriods_HugeCountClamped(t *testing.T) {
	for _, count := range []string{"1T", "99999999T"} {
		got, err := GetPeriods(scenario.Parameters{StartingPeriod: "2016", NumberOfPeriods: scenario.Text(count)})
		require.NoError(t, err, count)
		assert.Len(t, got, MaxPeriods, count)
		assert.Equal(t, "2016", got[0], count)
	}
}

func TestGetPeriods_StartOutOfRange(t *testing.T) {
	var invalid *units.ErrInvalidValue
	for _, start := range []string{"99999999T", "-5T"} {
		_, err := GetPeriods(scenario.Parameters{StartingPeriod: scenario.Text(start), NumberOfPeriods: "2"})
		assert.True(t, errors.As(err, &invalid), start)

		_, err = Initial(scenario.Parameters{StartingPeriod: scenario.Text(start)})
		assert.True(t, errors.As(err, &invalid), start)
	}
}

func TestGetPeriods_Invalid(t *testing.T) {
	_, err := GetPeriods(scenario.Parameters{StartingPeriod: "next year", NumberOfPeriods: "3"})
	var invalid *units.ErrInvalidValue
	assert.True(t, errors.As(err, &invalid))

	_, err = GetPeriods(scenario.Parameters{StartingPeriod: "2016", NumberOfPeriods: "three"})
	assert.True(t, errors.As(err, &invalid))
}

func TestGetPeriodsWithInitial(t *testing.T) {
	got, err := GetPeriodsWithInitial(scenario.Parameters{StartingPeriod: "2016", NumberOfPeriods: "3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2015", "2016", "2017", "2018"}, got)

	got, err = GetPeriodsWithInitial(scenario.Parameters{NumberOfPeriods: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, got)
}
