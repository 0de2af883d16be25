package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		knowledge_level TEXT NOT NULL CHECK (knowledge_level IN ('beginner','intermediate','advanced')),
		study_pace TEXT NOT NULL CHECK (study_pace IN ('light','moderate','intensive')),
		goal TEXT NOT NULL CHECK (goal IN ('career_growth','personal_interest','academic','certification')),
		additional_info TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft','generating','ready','failed')),
		progress INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_user ON courses(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_status ON courses(status)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		default_knowledge_level TEXT NOT NULL DEFAULT 'beginner',
		default_study_pace TEXT NOT NULL DEFAULT 'moderate',
		last_course_id TEXT NOT NULL DEFAULT ''
	)`,
}
