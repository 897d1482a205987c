package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"assessment_templates", "questions", "severity_levels", "assessment_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_templates_short_id",
		"idx_questions_template",
		"idx_results_template",
		"idx_results_completed",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsRecommendationColumns(t *testing.T) {
	db := openTestDB(t)

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('severity_levels') WHERE name = 'recommendations_json'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenDB_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mindwell.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestSchema_RejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO assessment_templates (id, title, status, created_at, updated_at)
		VALUES ('t1', 'x', 'bogus', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
