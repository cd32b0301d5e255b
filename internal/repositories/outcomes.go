package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/cioprune/internal/models"
	"github.com/desertthunder/cioprune/internal/shared"
)

// OutcomeRepository stores per-target deletion outcomes in SQLite.
type OutcomeRepository struct {
	db *sql.DB
}

// NewOutcomeRepository creates a new OutcomeRepository with the given database connection
func NewOutcomeRepository(db *sql.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// Init creates the outcomes table if it does not exist.
func (r *OutcomeRepository) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS outcomes (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			identifier TEXT NOT NULL,
			email TEXT,
			original_id TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create outcomes table: %w", err)
	}
	return nil
}

// Create inserts one outcome row for the given run.
func (r *OutcomeRepository) Create(runID string, o models.Outcome) error {
	query := `
		INSERT INTO outcomes (id, run_id, identifier, email, original_id, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		shared.GenerateID(),
		runID,
		o.Target.Identifier,
		o.Target.Email,
		o.Target.OriginalID,
		o.Success,
		o.Error,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outcome: %w", err)
	}

	return nil
}

// RunSummary aggregates the stored outcomes of one run.
type RunSummary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	StartedAt time.Time
	EndedAt   time.Time
}

// ListRuns returns a summary per recorded run, most recent first.
func (r *OutcomeRepository) ListRuns() ([]RunSummary, error) {
	query := `
		SELECT run_id,
			COUNT(*),
			SUM(success),
			COUNT(*) - SUM(success),
			MIN(created_at),
			MAX(created_at)
		FROM outcomes
		GROUP BY run_id
		ORDER BY MAX(created_at) DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var started, ended string
		if err := rows.Scan(&s.RunID, &s.Total, &s.Succeeded, &s.Failed, &started, &ended); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		s.StartedAt = parseTimestamp(started)
		s.EndedAt = parseTimestamp(ended)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return summaries, nil
}

// parseTimestamp decodes a stored timestamp. Aggregates like MIN(created_at)
// lose the column's declared type, so the driver hands the value back as text.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Failures returns the failed outcomes of a run in insertion order.
// A limit of 0 returns all of them.
func (r *OutcomeRepository) Failures(runID string, limit int) ([]models.Outcome, error) {
	query := `
		SELECT identifier, email, original_id, error
		FROM outcomes
		WHERE run_id = ? AND success = 0
		ORDER BY created_at
	`
	args := []any{runID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var failures []models.Outcome
	for rows.Next() {
		var o models.Outcome
		if err := rows.Scan(&o.Target.Identifier, &o.Target.Email, &o.Target.OriginalID, &o.Error); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		failures = append(failures, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate failures: %w", err)
	}
	return failures, nil
}
