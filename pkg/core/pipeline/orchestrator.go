package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/store"
	"scenario_projection/pkg/core/validate"
	"scenario_projection/pkg/observability"
)

var tracer = otel.Tracer("pipeline")

// ErrNoRepository is returned by archive operations when no repository is configured.
var ErrNoRepository = errors.New("no snapshot repository configured")

// ValidationError carries the issues that stopped a strict run.
type ValidationError struct {
	Issues []validate.Issue
}

func (e *ValidationError) Error() string {
	for _, i := range e.Issues {
		if i.Severity == validate.SeverityError {
			return fmt.Sprintf("scenario is invalid: %s: %s", i.Field, i.Message)
		}
	}
	return "scenario is invalid"
}

// ValidationConfig defines how validation findings affect a run.
type ValidationConfig struct {
	EnableStrictValidation bool    // If true, validation errors stop the pipeline
	BalanceSheetTolerance  float64 // Allowed gap for assets = liabilities
}

// Result is the outcome of one pipeline run.
type Result struct {
	Scenario scenario.Scenario      `json:"-"`
	Issues   []validate.Issue       `json:"issues"`
	Reports  []projection.Report    `json:"reports"`
	Balance  *validate.BalanceCheck `json:"balance,omitempty"`
	Snapshot *store.SnapshotSummary `json:"snapshot,omitempty"`
}

// ReportPipeline manages the end-to-end flow:
// Decode -> Validate -> Compute (one goroutine per report) -> Balance check -> Archive
type ReportPipeline struct {
	engine           *projection.Engine
	repo             store.SnapshotRepository
	metrics          *observability.Metrics
	logger           *zap.Logger
	validationConfig ValidationConfig
}

// NewReportPipeline creates a pipeline. repo may be nil when nothing is archived;
// nil metrics or logger get private defaults.
func NewReportPipeline(engine *projection.Engine, repo store.SnapshotRepository, metrics *observability.Metrics, logger *zap.Logger) *ReportPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = projection.NewEngine(logger)
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	return &ReportPipeline{
		engine:  engine,
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		validationConfig: ValidationConfig{
			EnableStrictValidation: true,
			BalanceSheetTolerance:  validate.DefaultTolerance,
		},
	}
}

// SetRepository allows injecting a custom repository (e.g., for testing).
func (p *ReportPipeline) SetRepository(repo store.SnapshotRepository) {
	p.repo = repo
}

// SetValidationConfig updates the validation configuration
func (p *ReportPipeline) SetValidationConfig(config ValidationConfig) {
	p.validationConfig = config
}

// Decode parses a scenario document.
func (p *ReportPipeline) Decode(ctx context.Context, data []byte, format scenario.Format) (scenario.Scenario, error) {
	_, span := tracer.Start(ctx, "pipeline.Decode", trace.WithAttributes(
		attribute.String("format", string(format)),
		attribute.Int("bytes", len(data)),
	))
	defer span.End()

	s, err := scenario.Decode(data, format)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return scenario.Scenario{}, err
	}
	span.SetAttributes(attribute.String("scenario.id", s.ID))
	return s, nil
}

// Run validates the scenario and computes the requested reports (all when none given).
func (p *ReportPipeline) Run(ctx context.Context, s scenario.Scenario, kinds ...projection.ReportKind) (*Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(
		attribute.String("scenario.id", s.ID),
	))
	defer span.End()
	start := time.Now()

	// 1. Validation
	issues := validate.Scenario(s)
	if validate.HasErrors(issues) {
		if p.validationConfig.EnableStrictValidation {
			err := &ValidationError{Issues: issues}
			span.SetStatus(codes.Error, err.Error())
			return &Result{Scenario: s, Issues: issues, Reports: []projection.Report{}}, err
		}
		p.logger.Warn("scenario has validation errors, computing anyway",
			zap.String("scenario_id", s.ID), zap.Int("issues", len(issues)))
	}

	// 2. Computation
	if len(kinds) == 0 {
		kinds = projection.ReportKinds
	}
	reports, err := p.compute(ctx, s, kinds)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	res := &Result{Scenario: s, Issues: issues, Reports: reports}
	if res.Issues == nil {
		res.Issues = []validate.Issue{}
	}

	// 3. Balance check (informational; placeholders keep the sheet open)
	for _, r := range reports {
		if r.Kind != projection.KindBalanceSheet || r.Failed() {
			continue
		}
		check, err := validate.CheckBalance(r, p.validationConfig.BalanceSheetTolerance)
		if err != nil {
			p.logger.Debug("balance check skipped", zap.Error(err))
			continue
		}
		res.Balance = check
	}

	p.logger.Debug("pipeline run complete",
		zap.String("scenario_id", s.ID),
		zap.Int("reports", len(reports)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// compute runs one derivation per goroutine. Derivations only read the scenario.
func (p *ReportPipeline) compute(ctx context.Context, s scenario.Scenario, kinds []projection.ReportKind) ([]projection.Report, error) {
	reports := make([]projection.Report, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := tracer.Start(gctx, "pipeline.ComputeReport", trace.WithAttributes(
				attribute.String("kind", string(kind)),
			))
			defer span.End()

			started := time.Now()
			r := p.engine.ComputeReport(kind, s)
			p.metrics.RecordReport(string(kind), time.Since(started), r.Failed())
			if r.Failed() {
				span.SetStatus(codes.Error, r.Error)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Archive runs the full pipeline and stores the result as a snapshot.
func (p *ReportPipeline) Archive(ctx context.Context, s scenario.Scenario) (*Result, error) {
	if p.repo == nil {
		return nil, ErrNoRepository
	}
	res, err := p.Run(ctx, s)
	if err != nil {
		return res, err
	}

	ctx, span := tracer.Start(ctx, "pipeline.Archive")
	defer span.End()

	snap := store.NewSnapshot(s, res.Reports)
	err = p.repo.Save(ctx, snap)
	p.metrics.RecordSnapshotOp("save", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("storage failed: %w", err)
	}
	summary := snap.Summary()
	res.Snapshot = &summary
	p.logger.Info("snapshot archived",
		zap.String("snapshot_id", snap.ID.String()),
		zap.String("scenario_id", s.ID))
	return res, nil
}

// Snapshot loads an archived snapshot.
func (p *ReportPipeline) Snapshot(ctx context.Context, id uuid.UUID) (*store.Snapshot, error) {
	if p.repo == nil {
		return nil, ErrNoRepository
	}
	snap, err := p.repo.Get(ctx, id)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		p.metrics.RecordSnapshotOp("get", nil)
		return nil, err
	}
	p.metrics.RecordSnapshotOp("get", err)
	return snap, err
}

// Snapshots lists archived snapshots of a scenario, newest first.
func (p *ReportPipeline) Snapshots(ctx context.Context, scenarioID string) ([]store.SnapshotSummary, error) {
	if p.repo == nil {
		return nil, ErrNoRepository
	}
	list, err := p.repo.ListByScenario(ctx, scenarioID)
	p.metrics.RecordSnapshotOp("list", err)
	return list, err
}
