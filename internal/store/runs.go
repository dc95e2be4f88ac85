package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// fixed width so started_at sorts as text
const tsLayout = "2006-01-02T15:04:05.000000Z07:00"

// Run is one pipeline execution against one source.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Harvested  int       `json:"harvested"`
	Records    int       `json:"records"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
}

func RecordRun(ctx context.Context, db *sql.DB, r Run) error {
	_, err := db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, source, started_at, finished_at, harvested, records, failed, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID, r.Source, r.StartedAt.UTC().Format(tsLayout), r.FinishedAt.UTC().Format(tsLayout),
		r.Harvested, r.Records, r.Failed, r.Error,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, source, started_at, finished_at, harvested, records, failed, error
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r              Run
			started, ended string
		)
		if err := rows.Scan(&r.ID, &r.Source, &started, &ended, &r.Harvested, &r.Records, &r.Failed, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(tsLayout, started)
		r.FinishedAt, _ = time.Parse(tsLayout, ended)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CleanupOldRuns drops run history older than three months.
func CleanupOldRuns(db *sql.DB) (deleted int64, err error) {
	cutoff := time.Now().UTC().AddDate(0, -3, 0).Format(tsLayout)
	res, err := db.Exec(`DELETE FROM runs WHERE started_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
