package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/store"
	"scenario_projection/pkg/observability"
)

// --- Mocks ---

type MockRepository struct {
	SaveFunc func(ctx context.Context, snap *store.Snapshot) error
	saved    []*store.Snapshot
}

func (m *MockRepository) Save(ctx context.Context, snap *store.Snapshot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snap)
	}
	m.saved = append(m.saved, snap)
	return nil
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*store.Snapshot, error) {
	for _, s := range m.saved {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, store.ErrSnapshotNotFound
}

func (m *MockRepository) ListByScenario(ctx context.Context, scenarioID string) ([]store.SnapshotSummary, error) {
	out := []store.SnapshotSummary{}
	for _, s := range m.saved {
		if s.ScenarioID == scenarioID {
			out = append(out, s.Summary())
		}
	}
	return out, nil
}

// --- Fixtures ---

func shop() scenario.Scenario {
	return scenario.Scenario{
		ID:    "shop",
		Title: "Corner shop",
		Parameters: scenario.Parameters{
			StartingPeriod:   "2020",
			NumberOfPeriods:  "2",
			CorporateTaxRate: "20%",
		},
		Categories: []scenario.Category{
			{ID: "sales", Label: "Sales", Section: scenario.SectionRevenues, Group: "products",
				Price:      scenario.Price{Type: scenario.PriceConstant, Value: "10", Change: "0%"},
				Quantities: map[string]scenario.Text{"2020": "100", "2021": "200"}},
			{ID: "rent", Label: "Rent", Section: scenario.SectionCosts, Group: scenario.GroupIndirect,
				Price: scenario.Price{Type: scenario.PriceManual, Values: map[string]scenario.Text{"2020": "300", "2021": "300"}},
				Quantities: map[string]scenario.Text{"2020": "1", "2021": "1"}},
		},
	}
}

func newPipeline(repo store.SnapshotRepository) (*ReportPipeline, *observability.Metrics) {
	m := observability.NewMetrics()
	return NewReportPipeline(nil, repo, m, nil), m
}

// --- Tests ---

func TestRun_AllReports(t *testing.T) {
	p, m := newPipeline(nil)

	res, err := p.Run(context.Background(), shop())
	require.NoError(t, err)
	require.Len(t, res.Reports, 3)
	for i, kind := range projection.ReportKinds {
		assert.Equal(t, kind, res.Reports[i].Kind, "reports keep display order")
		assert.False(t, res.Reports[i].Failed(), res.Reports[i].Error)
	}
	assert.Empty(t, res.Issues)
	require.NotNil(t, res.Balance)

	netResult, ok := res.Reports[0].Item("netResult")
	require.True(t, ok)
	// 2020: (1000 - 300) * 0.8
	assert.InDelta(t, 560, netResult.Values["2020"], 1e-9)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.ReportFailures().WithLabelValues(string(projection.KindCashflow))))
}

func TestRun_SelectedKind(t *testing.T) {
	p, _ := newPipeline(nil)

	res, err := p.Run(context.Background(), shop(), projection.KindCashflow)
	require.NoError(t, err)
	require.Len(t, res.Reports, 1)
	assert.Equal(t, projection.KindCashflow, res.Reports[0].Kind)
	assert.Nil(t, res.Balance)
}

func TestRun_StrictValidation(t *testing.T) {
	p, _ := newPipeline(nil)
	s := shop()
	s.Parameters.CorporateTaxRate = "20"

	res, err := p.Run(context.Background(), s)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "parameters.corporateTaxRate")
	assert.Empty(t, res.Reports)
}

func TestRun_LenientValidationReportsFailure(t *testing.T) {
	p, m := newPipeline(nil)
	p.SetValidationConfig(ValidationConfig{EnableStrictValidation: false})
	s := shop()
	s.Parameters.CorporateTaxRate = "20"

	res, err := p.Run(context.Background(), s)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Issues)

	pnl := res.Reports[0]
	assert.True(t, pnl.Failed())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures().WithLabelValues(string(projection.KindProfitAndLoss))))
}

func TestRun_CancelledContext(t *testing.T) {
	p, _ := newPipeline(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, shop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArchive(t *testing.T) {
	repo := &MockRepository{}
	p, m := newPipeline(repo)
	ctx := context.Background()

	res, err := p.Archive(ctx, shop())
	require.NoError(t, err)
	require.NotNil(t, res.Snapshot)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "shop", res.Snapshot.ScenarioID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotOps().WithLabelValues("save", "success")))

	snap, err := p.Snapshot(ctx, res.Snapshot.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Reports, 3)

	list, err := p.Snapshots(ctx, "shop")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = p.Snapshot(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}

func TestArchive_StorageFailure(t *testing.T) {
	repo := &MockRepository{SaveFunc: func(context.Context, *store.Snapshot) error {
		return errors.New("connection refused")
	}}
	p, m := newPipeline(repo)

	_, err := p.Archive(context.Background(), shop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage failed")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotOps().WithLabelValues("save", "error")))
}

func TestArchive_FileBackend(t *testing.T) {
	p, _ := newPipeline(store.NewSnapshotArchive(nil, t.TempDir()))
	ctx := context.Background()

	res, err := p.Archive(ctx, shop())
	require.NoError(t, err)
	snap, err := p.Snapshot(ctx, res.Snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner shop", snap.ScenarioTitle)
}

func TestArchive_NoRepository(t *testing.T) {
	p, _ := newPipeline(nil)
	_, err := p.Archive(context.Background(), shop())
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestDecode(t *testing.T) {
	p, _ := newPipeline(nil)
	s, err := p.Decode(context.Background(), []byte(`{"id": "x", "parameters": {"startingPeriod": 2020,}}`), scenario.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "x", s.ID)

	_, err = p.Decode(context.Background(), []byte("  "), scenario.FormatAuto)
	assert.ErrorIs(t, err, scenario.ErrDecode)
}
