// Package projection derives the profit & loss, balance sheet and cashflow
// reports from a scenario.
//
// Every derivation is a pure function of the scenario: nothing is cached and the
// scenario is never modified. Engine adds the report boundary, turning a parse
// error or panic into a failed Report instead of aborting the other reports.
package projection

import (
	"fmt"

	"go.uber.org/zap"

	"scenario_projection/pkg/core/scenario"
)

// Derivation computes the periods and line items of one report.
type Derivation func(s scenario.Scenario) ([]string, []LineItem, error)

// Engine computes reports behind a per-report error boundary.
type Engine struct {
	logger      *zap.Logger
	derivations map[ReportKind]Derivation
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		derivations: map[ReportKind]Derivation{
			KindProfitAndLoss: ProfitAndLoss,
			KindBalanceSheet:  BalanceSheet,
			KindCashflow:      Cashflow,
		},
	}
}

// Compute returns all reports in display order.
func (e *Engine) Compute(s scenario.Scenario) []Report {
	reports := make([]Report, 0, len(ReportKinds))
	for _, kind := range ReportKinds {
		reports = append(reports, e.ComputeReport(kind, s))
	}
	return reports
}

// ComputeReport computes one report. Failures are reported in Report.Error.
func (e *Engine) ComputeReport(kind ReportKind, s scenario.Scenario) (report Report) {
	report = Report{Kind: kind, Title: kind.Title(), Items: []LineItem{}}

	derive, ok := e.derivations[kind]
	if !ok {
		report.Error = fmt.Sprintf("unknown report kind %q", kind)
		return report
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("report computation panicked",
				zap.String("kind", string(kind)),
				zap.String("scenario_id", s.ID),
				zap.Any("panic", r))
			report.Items = []LineItem{}
			report.Error = fmt.Sprintf("internal error: %v", r)
		}
	}()

	periods, items, err := derive(s)
	if err != nil {
		e.logger.Warn("report computation failed",
			zap.String("kind", string(kind)),
			zap.String("scenario_id", s.ID),
			zap.Error(err))
		report.Error = err.Error()
		return report
	}

	report.Periods = periods
	report.Items = items
	e.logger.Debug("report computed",
		zap.String("kind", string(kind)),
		zap.String("scenario_id", s.ID),
		zap.Int("periods", len(periods)),
		zap.Int("items", len(items)))
	return report
}

// withDerivation replaces the derivation of kind; used by tests to exercise the boundary.
func (e *Engine) withDerivation(kind ReportKind, d Derivation) *Engine {
	e.derivations[kind] = d
	return e
}
