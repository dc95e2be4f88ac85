package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"lokerit-engine/internal/dataset"
	"lokerit-engine/internal/domain"
)

const schemaVersion = 1

// ListOpts filters ListListings. Empty fields match everything.
type ListOpts struct {
	Category string
	Province string
	Source   string
	Limit    int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	stmts := []string{`
CREATE TABLE IF NOT EXISTS listings (
  ordinal INTEGER PRIMARY KEY,
  company TEXT NOT NULL,
  position TEXT NOT NULL,
  category TEXT NOT NULL,
  city TEXT NOT NULL DEFAULT '',
  province TEXT NOT NULL,
  salary INTEGER,
  skills TEXT NOT NULL DEFAULT '[]',
  education TEXT NOT NULL,
  employment_type TEXT NOT NULL,
  link TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT ''
);`, `
CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);`, `
CREATE INDEX IF NOT EXISTS idx_listings_province ON listings(province);`, `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  harvested INTEGER NOT NULL DEFAULT 0,
  records INTEGER NOT NULL DEFAULT 0,
  failed INTEGER NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT ''
);`, `
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveDataset replaces the stored dataset with ds in one transaction, keeping
// its order.
func SaveDataset(ctx context.Context, db *sql.DB, ds dataset.Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings;`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO listings (ordinal, company, position, category, city, province, salary, skills, education, employment_type, link, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range ds {
		skills := r.Skills
		if skills == nil {
			skills = []string{}
		}
		skillsB, _ := json.Marshal(skills)
		var salary sql.NullInt64
		if r.Salary.Valid {
			salary = sql.NullInt64{Int64: r.Salary.Amount, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, r.Company, r.Position, string(r.Category), r.City, r.Province,
			salary, string(skillsB), r.Education, r.EmploymentType, r.SourceLink, r.Source); err != nil {
			return fmt.Errorf("insert listing %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// LoadDataset returns the whole stored dataset in saved order.
func LoadDataset(ctx context.Context, db *sql.DB) (dataset.Dataset, error) {
	return ListListings(ctx, db, ListOpts{})
}

func ListListings(ctx context.Context, db *sql.DB, opts ListOpts) (dataset.Dataset, error) {
	var (
		where []string
		args  []any
	)
	if opts.Category != "" {
		where = append(where, "category = ?")
		args = append(args, opts.Category)
	}
	if opts.Province != "" {
		where = append(where, "province = ?")
		args = append(args, opts.Province)
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, opts.Source)
	}

	query := `
SELECT company, position, category, city, province, salary, skills, education, employment_type, link, source
FROM listings`
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY ordinal ASC"
	if opts.Limit > 0 {
		query += "\nLIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	out := dataset.Dataset{}
	for rows.Next() {
		var (
			r        domain.ListingRecord
			cat      string
			salary   sql.NullInt64
			skillsJS string
		)
		if err := rows.Scan(&r.Company, &r.Position, &cat, &r.City, &r.Province, &salary, &skillsJS,
			&r.Education, &r.EmploymentType, &r.SourceLink, &r.Source); err != nil {
			return nil, err
		}
		r.Category = domain.Category(cat)
		r.Salary = domain.NoSalary()
		if salary.Valid {
			r.Salary = domain.SalaryOf(salary.Int64)
		}
		r.Skills = []string{}
		_ = json.Unmarshal([]byte(skillsJS), &r.Skills)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
