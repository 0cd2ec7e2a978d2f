// Package store handles SQLite persistence of completed assessment runs, so
// downstream plotting can read the raw outcome sequences without rerunning
// the simulation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/aquarisk/campy-qmra/model"
)

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// RunInfo is one row of the run listing.
type RunInfo struct {
	ID         int64
	CreatedAt  time.Time
	CohortSize int
	TrialCount int
	Seed       uint64
	Mean       float64
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			config_json TEXT NOT NULL,
			cohort_size INTEGER NOT NULL,
			trial_count INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			mean REAL NOT NULL,
			stddev REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_outcomes (
			run_id INTEGER NOT NULL,
			trial INTEGER NOT NULL,
			infected INTEGER NOT NULL,
			PRIMARY KEY (run_id, trial)
		);`,
		`CREATE TABLE IF NOT EXISTS run_quantiles (
			run_id INTEGER NOT NULL,
			prob REAL NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (run_id, prob)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun persists one completed run and returns its id.
func (s *Store) SaveRun(ctx context.Context, cfg model.AssessmentConfig, res *model.AssessmentResult) (int64, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insert, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, config_json, cohort_size, trial_count, seed, mean, stddev)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), string(cfgJSON),
		cfg.CohortSize, cfg.TrialCount, int64(cfg.Seed),
		res.Summary.Mean, res.Summary.StdDev)
	if err != nil {
		return 0, err
	}
	runID, err := insert.LastInsertId()
	if err != nil {
		return 0, err
	}

	outcomeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_outcomes (run_id, trial, infected) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer outcomeStmt.Close()
	for trial, infected := range res.Outcomes {
		if _, err := outcomeStmt.ExecContext(ctx, runID, trial, int64(infected)); err != nil {
			return 0, err
		}
	}

	quantileStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_quantiles (run_id, prob, value) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer quantileStmt.Close()
	for _, q := range res.Summary.Quantiles {
		if _, err := quantileStmt.ExecContext(ctx, runID, q.Quantile, q.Value); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// LoadRun reads the outcome sequence and summary of a stored run.
func (s *Store) LoadRun(ctx context.Context, runID int64) (*model.AssessmentResult, error) {
	var mean, stddev float64
	err := s.db.QueryRowContext(ctx,
		`SELECT mean, stddev FROM runs WHERE id = ?`, runID).Scan(&mean, &stddev)
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT infected FROM run_outcomes WHERE run_id = ? ORDER BY trial`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []float64
	for rows.Next() {
		var infected int64
		if err := rows.Scan(&infected); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, float64(infected))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	qrows, err := s.db.QueryContext(ctx,
		`SELECT prob, value FROM run_quantiles WHERE run_id = ? ORDER BY prob`, runID)
	if err != nil {
		return nil, err
	}
	defer qrows.Close()

	var quantiles []model.QuantileValue
	for qrows.Next() {
		var q model.QuantileValue
		if err := qrows.Scan(&q.Quantile, &q.Value); err != nil {
			return nil, err
		}
		quantiles = append(quantiles, q)
	}
	if err := qrows.Err(); err != nil {
		return nil, err
	}

	return &model.AssessmentResult{
		Outcomes: outcomes,
		Summary: model.RiskSummary{
			Mean:      mean,
			StdDev:    stddev,
			Quantiles: quantiles,
		},
	}, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, cohort_size, trial_count, seed, mean
		 FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt string
		var seed int64
		if err := rows.Scan(&info.ID, &createdAt, &info.CohortSize,
			&info.TrialCount, &seed, &info.Mean); err != nil {
			return nil, err
		}
		info.Seed = uint64(seed)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			info.CreatedAt = ts
		}
		res = append(res, info)
	}
	return res, rows.Err()
}
