package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/scenario"
)

var (
	// ErrSnapshotNotFound is returned by Get for an unknown id.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSnapshotExists is returned by Save when the id is already archived.
	ErrSnapshotExists = errors.New("snapshot already exists")
)

// Snapshot is an archived computation: the scenario as it was and the reports
// computed from it. Snapshots are append-only; the engine never reads them back.
type Snapshot struct {
	ID            uuid.UUID           `json:"id"`
	ScenarioID    string              `json:"scenarioId"`
	ScenarioTitle string              `json:"scenarioTitle,omitempty"`
	Scenario      scenario.Scenario   `json:"scenario"`
	Reports       []projection.Report `json:"reports"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// SnapshotSummary is the listing form of a Snapshot.
type SnapshotSummary struct {
	ID            uuid.UUID `json:"id"`
	ScenarioID    string    `json:"scenarioId"`
	ScenarioTitle string    `json:"scenarioTitle,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSnapshot stamps a new snapshot with a fresh id and the current time.
func NewSnapshot(s scenario.Scenario, reports []projection.Report) *Snapshot {
	return &Snapshot{
		ID:            uuid.New(),
		ScenarioID:    s.ID,
		ScenarioTitle: s.Title,
		Scenario:      s,
		Reports:       reports,
		CreatedAt:     time.Now().UTC(),
	}
}

// Summary returns the listing form.
func (s *Snapshot) Summary() SnapshotSummary {
	return SnapshotSummary{ID: s.ID, ScenarioID: s.ScenarioID, ScenarioTitle: s.ScenarioTitle, CreatedAt: s.CreatedAt}
}

// SnapshotRepository archives and retrieves snapshots.
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	Get(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	// ListByScenario returns the snapshots of one scenario, newest first.
	ListByScenario(ctx context.Context, scenarioID string) ([]SnapshotSummary, error)
}
