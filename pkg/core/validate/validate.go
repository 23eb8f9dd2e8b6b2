// Package validate checks scenarios before computation and computed reports after it.
// These functions can be called from tests, API handlers or the CLI.
package validate

import (
	"fmt"
	"math"

	"scenario_projection/pkg/core/projection"
)

// =============================================================================
// BALANCE SHEET VALIDATION
// =============================================================================

// DefaultTolerance is the allowed gap between assets and liabilities.
const DefaultTolerance = 0.01

// PeriodBalance is the balance check of one period.
type PeriodBalance struct {
	Period           string  `json:"period"`
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
	Difference       float64 `json:"difference"`
	IsBalanced       bool    `json:"isBalanced"`
}

// BalanceCheck verifies totalAssets = totalLiabilities for every period.
type BalanceCheck struct {
	Periods    []PeriodBalance `json:"periods"`
	IsBalanced bool            `json:"isBalanced"`
	Tolerance  float64         `json:"tolerance"`
}

// CheckBalance validates a computed balance sheet within tolerance.
// The sheet still carries placeholder rows, so an unbalanced result is expected
// until working capital, cash and equity are modelled.
func CheckBalance(report projection.Report, tolerance float64) (*BalanceCheck, error) {
	if report.Kind != projection.KindBalanceSheet {
		return nil, fmt.Errorf("balance check needs a balance sheet, got %s", report.Kind)
	}
	if report.Failed() {
		return nil, fmt.Errorf("balance sheet failed: %s", report.Error)
	}
	assets, ok := report.Item("totalAssets")
	if !ok {
		return nil, fmt.Errorf("balance sheet has no totalAssets line")
	}
	liabilities, ok := report.Item("totalLiabilities")
	if !ok {
		return nil, fmt.Errorf("balance sheet has no totalLiabilities line")
	}

	check := &BalanceCheck{IsBalanced: true, Tolerance: tolerance}
	for _, p := range report.Periods {
		diff := assets.Values[p] - liabilities.Values[p]
		pb := PeriodBalance{
			Period:           p,
			TotalAssets:      assets.Values[p],
			TotalLiabilities: liabilities.Values[p],
			Difference:       diff,
			IsBalanced:       math.Abs(diff) <= tolerance,
		}
		if !pb.IsBalanced {
			check.IsBalanced = false
		}
		check.Periods = append(check.Periods, pb)
	}
	return check, nil
}
