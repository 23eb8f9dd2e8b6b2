package pricing

import (
	"fmt"

	"go.uber.org/zap"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
)

// RevenueStrategy prices a category as a share of revenue, either of all revenue
// categories or of a weighted list of them.
type RevenueStrategy struct {
	All         bool
	Percentage  float64
	Percentages []RevenueShare
}

// RevenueShare is the parsed form of scenario.RevenuePercentage.
type RevenueShare struct {
	CategoryID string
	Percentage float64
}

func newRevenue(p scenario.Price) (*RevenueStrategy, error) {
	pct, _, err := optionalPercentage("percentage", p.Percentage)
	if err != nil {
		return nil, err
	}
	s := &RevenueStrategy{All: p.All, Percentage: pct}
	for i, rp := range p.Percentages {
		v, _, err := optionalPercentage(fmt.Sprintf("percentages[%d]", i), rp.Percentage)
		if err != nil {
			return nil, err
		}
		s.Percentages = append(s.Percentages, RevenueShare{CategoryID: rp.CategoryID, Percentage: v})
	}
	return s, nil
}

func (s *RevenueStrategy) Name() scenario.PriceType { return scenario.PriceRevenue }

func (s *RevenueStrategy) Calculate(ctx Context) (series.Series, error) {
	out := series.Zero(ctx.Periods)
	if ctx.RevenueTotals == nil {
		zap.L().Warn("revenue totals not supplied for revenue-priced category, using zero series")
		return out, nil
	}

	if s.All {
		for _, rt := range ctx.RevenueTotals {
			for _, p := range ctx.Periods {
				out[p] += rt.Totals[p] * s.Percentage
			}
		}
		return out, nil
	}

	byID := make(map[string]series.Series, len(ctx.RevenueTotals))
	for _, rt := range ctx.RevenueTotals {
		byID[rt.ID] = rt.Totals
	}
	for _, share := range s.Percentages {
		totals, ok := byID[share.CategoryID]
		if !ok {
			continue
		}
		for _, p := range ctx.Periods {
			out[p] += totals[p] * share.Percentage
		}
	}
	return out, nil
}
