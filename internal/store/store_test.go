package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lokerit-engine/internal/dataset"
	"lokerit-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "lokerit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func listing(company, position, link string, cat domain.Category, province string) domain.ListingRecord {
	r := domain.NewRecord(domain.ListingStub{Company: company, Title: position, Link: link, Source: "kalibrr"})
	r.Category = cat
	r.Province = province
	return r
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, schemaVersion, v)
}

func TestSaveDatasetReplacesAndKeepsOrder(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	first := dataset.Dataset{
		listing("PT A", "Backend", "https://x/1", domain.CategorySoftwareEngineering, "DKI Jakarta"),
		listing("PT B", "Data Analyst", "https://x/2", domain.CategoryDataAI, "Jawa Barat"),
	}
	first[0].Salary = domain.SalaryOf(9_000_000)
	first[0].Skills = []string{"golang", "redis"}
	require.NoError(t, SaveDataset(ctx, db.Pool, first))

	got, err := LoadDataset(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := dataset.Dataset{
		listing("PT C", "QA Tester", "https://x/3", domain.CategoryQA, "Bali"),
		first[1],
		first[0],
	}
	require.NoError(t, SaveDataset(ctx, db.Pool, second))

	got, err = LoadDataset(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestListListingsFilters(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	require.NoError(t, SaveDataset(ctx, db.Pool, dataset.Dataset{
		listing("PT A", "Backend", "https://x/1", domain.CategorySoftwareEngineering, "DKI Jakarta"),
		listing("PT B", "Frontend", "https://x/2", domain.CategorySoftwareEngineering, "Jawa Barat"),
		listing("PT C", "Data Engineer", "https://x/3", domain.CategoryDataAI, "DKI Jakarta"),
	}))

	swe, err := ListListings(ctx, db.Pool, ListOpts{Category: string(domain.CategorySoftwareEngineering)})
	require.NoError(t, err)
	assert.Len(t, swe, 2)

	jkt, err := ListListings(ctx, db.Pool, ListOpts{Province: "DKI Jakarta", Limit: 1})
	require.NoError(t, err)
	require.Len(t, jkt, 1)
	assert.Equal(t, "PT A", jkt[0].Company)

	none, err := ListListings(ctx, db.Pool, ListOpts{Source: "lokerid"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, RecordRun(ctx, db.Pool, Run{ID: "a", Source: "kalibrr", StartedAt: now.Add(-time.Hour), FinishedAt: now.Add(-time.Hour), Records: 3}))
	require.NoError(t, RecordRun(ctx, db.Pool, Run{ID: "b", Source: "lokerid", StartedAt: now, FinishedAt: now.Add(time.Minute), Records: 5, Failed: 1}))
	require.NoError(t, RecordRun(ctx, db.Pool, Run{ID: "old", Source: "lokerid", StartedAt: now.AddDate(-1, 0, 0), FinishedAt: now.AddDate(-1, 0, 0)}))

	runs, err := ListRuns(ctx, db.Pool, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, 1, runs[0].Failed)
	assert.True(t, runs[0].StartedAt.Equal(now))

	n, err := CleanupOldRuns(db.Pool)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
