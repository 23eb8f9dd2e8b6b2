package projection

import (
	"fmt"

	"scenario_projection/pkg/core/series"
)

// ReportKind names one of the three financial reports.
type ReportKind string

const (
	KindProfitAndLoss ReportKind = "profitAndLoss"
	KindBalanceSheet  ReportKind = "balanceSheet"
	KindCashflow      ReportKind = "cashflow"
)

// ReportKinds lists the reports in display order.
var ReportKinds = []ReportKind{KindProfitAndLoss, KindBalanceSheet, KindCashflow}

// Title returns the display title of the report.
func (k ReportKind) Title() string {
	switch k {
	case KindProfitAndLoss:
		return "Profit & Loss"
	case KindBalanceSheet:
		return "Balance Sheet"
	case KindCashflow:
		return "Cashflow"
	}
	return string(k)
}

// ParseReportKind accepts the canonical names plus a few short aliases.
func ParseReportKind(s string) (ReportKind, error) {
	switch s {
	case "profitAndLoss", "pnl", "profit-and-loss":
		return KindProfitAndLoss, nil
	case "balanceSheet", "balance", "balance-sheet":
		return KindBalanceSheet, nil
	case "cashflow", "cash-flow":
		return KindCashflow, nil
	}
	return "", fmt.Errorf("unknown report kind %q (valid: profitAndLoss, balanceSheet, cashflow)", s)
}

// Line item classes used by renderers.
const (
	ClassTotal      = "total"
	ClassGrandTotal = "grand-total"
)

// LineItem is one named row of a report.
type LineItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Values    series.Series `json:"values"`
	ClassName string        `json:"className,omitempty"`

	// Placeholder marks rows whose formula is not implemented yet; they keep
	// the report shape stable and hold zeros or an empty series.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Report is the output of one derivation. When Error is set, Items is empty.
type Report struct {
	Kind    ReportKind `json:"kind"`
	Title   string     `json:"title"`
	Periods []string   `json:"periods"`
	Items   []LineItem `json:"items"`
	Error   string     `json:"error,omitempty"`
}

// Failed reports whether the derivation aborted.
func (r Report) Failed() bool { return r.Error != "" }

// Item finds a line item by id.
func (r Report) Item(id string) (LineItem, bool) {
	for _, it := range r.Items {
		if it.ID == id {
			return it, true
		}
	}
	return LineItem{}, false
}
