package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessment_templates (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','published','archived')),
		max_score   INTEGER NOT NULL DEFAULT 0 CHECK(max_score >= 0),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_short_id ON assessment_templates(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS questions (
		id           TEXT PRIMARY KEY,
		template_id  TEXT NOT NULL REFERENCES assessment_templates(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		text         TEXT NOT NULL,
		type         TEXT NOT NULL
		             CHECK(type IN ('single_choice','multi_choice','scale','text')),
		required     INTEGER NOT NULL DEFAULT 1,
		options_json TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_questions_template ON questions(template_id, position)`,

	`CREATE TABLE IF NOT EXISTS severity_levels (
		template_id TEXT NOT NULL REFERENCES assessment_templates(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		min_score   INTEGER NOT NULL,
		max_score   INTEGER NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (template_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS assessment_results (
		id             TEXT PRIMARY KEY,
		reference_code TEXT NOT NULL UNIQUE,
		template_id    TEXT NOT NULL REFERENCES assessment_templates(id) ON DELETE CASCADE,
		respondent     TEXT NOT NULL DEFAULT '',
		total_score    INTEGER NOT NULL,
		max_score      INTEGER NOT NULL,
		severity_name  TEXT NOT NULL DEFAULT '',
		severity_color TEXT NOT NULL DEFAULT '',
		answers_json   TEXT NOT NULL DEFAULT '[]',
		completed_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_results_template ON assessment_results(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_results_completed ON assessment_results(completed_at)`,

	// Recommendations were added after the first schema.
	`ALTER TABLE severity_levels ADD COLUMN recommendations_json TEXT NOT NULL DEFAULT '[]'`,
	`ALTER TABLE assessment_results ADD COLUMN recommendations_json TEXT NOT NULL DEFAULT '[]'`,
}
