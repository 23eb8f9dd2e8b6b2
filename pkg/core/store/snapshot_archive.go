package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SnapshotArchive stores snapshots in Postgres (primary) and/or a directory of
// JSON files (fallback/local). Reads use the database when a pool is set.
type SnapshotArchive struct {
	pool    *pgxpool.Pool
	fileDir string
}

var _ SnapshotRepository = (*SnapshotArchive)(nil)

// NewSnapshotArchive creates an archive. If pool is nil and dir is empty, files
// go to .cache/snapshots.
func NewSnapshotArchive(pool *pgxpool.Pool, dir string) *SnapshotArchive {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "snapshots")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			zap.L().Warn("cannot create snapshot directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	return &SnapshotArchive{pool: pool, fileDir: dir}
}

// Backend names the storage used for reads, for logs and readiness checks.
func (a *SnapshotArchive) Backend() string {
	if a.pool != nil {
		return "postgres"
	}
	return "file"
}

// Ping checks the primary storage.
func (a *SnapshotArchive) Ping(ctx context.Context) error {
	if a.pool != nil {
		return a.pool.Ping(ctx)
	}
	_, err := os.Stat(a.fileDir)
	return err
}

// Save archives snap. Existing ids are never overwritten.
func (a *SnapshotArchive) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// 1. Save to DB
	if a.pool != nil {
		query := `
			INSERT INTO report_snapshots (id, scenario_id, scenario_title, data, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`
		tag, err := a.pool.Exec(ctx, query, snap.ID.String(), snap.ScenarioID, snap.ScenarioTitle, data, snap.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save snapshot to db: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", ErrSnapshotExists, snap.ID)
		}
	}

	// 2. Save to file (always if configured)
	if a.fileDir != "" {
		f, err := os.OpenFile(a.snapshotPath(snap.ID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrSnapshotExists, snap.ID)
			}
			return fmt.Errorf("failed to save snapshot to file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("failed to save snapshot to file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to save snapshot to file: %w", err)
		}
	}
	return nil
}

// Get loads one snapshot.
func (a *SnapshotArchive) Get(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	if a.pool != nil {
		var data []byte
		err := a.pool.QueryRow(ctx, `SELECT data FROM report_snapshots WHERE id = $1`, id.String()).Scan(&data)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return &snap, nil
	}

	snap, err := a.loadFromFile(a.snapshotPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap, err
}

// ListByScenario returns the snapshots of one scenario, newest first.
func (a *SnapshotArchive) ListByScenario(ctx context.Context, scenarioID string) ([]SnapshotSummary, error) {
	if a.pool != nil {
		query := `
			SELECT id, scenario_id, scenario_title, created_at
			FROM report_snapshots
			WHERE scenario_id = $1
			ORDER BY created_at DESC
		`
		rows, err := a.pool.Query(ctx, query, scenarioID)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		defer rows.Close()

		out := []SnapshotSummary{}
		for rows.Next() {
			var (
				id  string
				sum SnapshotSummary
			)
			if err := rows.Scan(&id, &sum.ScenarioID, &sum.ScenarioTitle, &sum.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot: %w", err)
			}
			if sum.ID, err = uuid.Parse(id); err != nil {
				return nil, fmt.Errorf("invalid snapshot id %q: %w", id, err)
			}
			out = append(out, sum)
		}
		return out, rows.Err()
	}

	return a.scanFiles(scenarioID)
}

// Internal File Helpers

func (a *SnapshotArchive) snapshotPath(id uuid.UUID) string {
	return filepath.Join(a.fileDir, id.String()+".json")
}

func (a *SnapshotArchive) loadFromFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", filepath.Base(path), err)
	}
	return &snap, nil
}

func (a *SnapshotArchive) scanFiles(scenarioID string) ([]SnapshotSummary, error) {
	entries, err := os.ReadDir(a.fileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot directory: %w", err)
	}

	out := []SnapshotSummary{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		snap, err := a.loadFromFile(filepath.Join(a.fileDir, e.Name()))
		if err != nil {
			zap.L().Warn("skipping unreadable snapshot", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if snap.ScenarioID == scenarioID {
			out = append(out, snap.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
