package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

var periods = []string{"2016", "2017", "2018"}

func constantCategory(id, value, change string, q map[string]scenario.Text) scenario.Category {
	return scenario.Category{
		ID:         id,
		Label:      id,
		Section:    scenario.SectionCosts,
		Group:      scenario.GroupIndirect,
		Price:      scenario.Price{Type: scenario.PriceConstant, Value: scenario.Text(value), Change: scenario.Text(change)},
		Quantities: q,
	}
}

func TestTotals_EmptyIsZero(t *testing.T) {
	got, err := Totals(nil, periods, nil)
	require.NoError(t, err)
	assert.Equal(t, series.Series{"2016": 0, "2017": 0, "2018": 0}, got)
}

func TestTotals_Commutative(t *testing.T) {
	a := []scenario.Category{
		constantCategory("rent", "1k", "5%", map[string]scenario.Text{"2016": "1", "2017": "1", "2018": "1"}),
	}
	b := []scenario.Category{
		constantCategory("hosting", "200", "0%", map[string]scenario.Text{"2017": "3"}),
		constantCategory("travel", "50", "2%", map[string]scenario.Text{"2016": "4", "2018": "2"}),
	}

	both, err := Totals(append(append([]scenario.Category{}, a...), b...), periods, nil)
	require.NoError(t, err)
	ta, err := Totals(a, periods, nil)
	require.NoError(t, err)
	tb, err := Totals(b, periods, nil)
	require.NoError(t, err)

	sum := series.Add(ta, tb)
	for _, p := range periods {
		assert.InDelta(t, sum[p], both[p], 1e-9)
	}
}

func TestTotals_PropagatesErrors(t *testing.T) {
	bad := constantCategory("rent", "lots", "5%", map[string]scenario.Text{"2016": "1"})
	_, err := Totals([]scenario.Category{bad}, periods, nil)
	assert.Error(t, err)
}

func TestTwoPhase_RevenueShare(t *testing.T) {
	s := scenario.Scenario{Categories: []scenario.Category{
		{ID: "licenses", Section: scenario.SectionRevenues, Group: "licenses",
			Price:      scenario.Price{Type: scenario.PriceManual, Values: map[string]scenario.Text{"2016": "100", "2017": "100", "2018": "100"}},
			Quantities: map[string]scenario.Text{"2016": "10", "2017": "20", "2018": "30"}},
		{ID: "commission", Section: scenario.SectionCosts, Group: scenario.GroupDirect,
			Price: scenario.Price{Type: scenario.PriceRevenue, All: true, Percentage: "10%"}},
		{ID: "old", Section: scenario.SectionCosts, Group: scenario.GroupDirect, Deleted: true,
			Price:      scenario.Price{Type: scenario.PriceManual, Values: map[string]scenario.Text{"2016": "1M"}},
			Quantities: map[string]scenario.Text{"2016": "1"}},
	}}

	revenue, err := RevenueTotals(s, periods)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, series.Series{"2016": 1000, "2017": 2000, "2018": 3000}, SumRevenue(revenue, periods))

	direct, err := GroupTotals(s, scenario.SectionCosts, scenario.GroupDirect, periods, revenue)
	require.NoError(t, err)
	assert.InDelta(t, 100, direct["2016"], 1e-9)
	assert.InDelta(t, 200, direct["2017"], 1e-9)
	assert.InDelta(t, 300, direct["2018"], 1e-9)

	costs, err := SectionTotals(s, scenario.SectionCosts, periods, revenue)
	require.NoError(t, err)
	assert.Equal(t, direct, costs)
}

func TestAssetValues(t *testing.T) {
	cats := []scenario.Category{
		{ID: "laptop", Section: scenario.SectionInvestments, Group: scenario.GroupTangible,
			Price:      scenario.Price{Type: scenario.PriceInvestment, Value: "1000", DepreciationPeriod: "5"},
			Quantities: map[string]scenario.Text{"2016": "1"}},
		{ID: "license", Section: scenario.SectionInvestments, Group: scenario.GroupIntangible,
			Price:      scenario.Price{Type: scenario.PriceInvestment, Value: "400", DepreciationPeriod: "2"},
			Quantities: map[string]scenario.Text{"2017": "1"}},
	}
	got, err := AssetValues(cats, periods)
	require.NoError(t, err)
	assert.InDelta(t, 900, got["2016"], 1e-9)
	assert.InDelta(t, 700+300, got["2017"], 1e-9)
	assert.InDelta(t, 500+100, got["2018"], 1e-9)
}
