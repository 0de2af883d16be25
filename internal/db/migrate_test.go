package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already ran migrations; running again must be a no-op.
	require.NoError(t, Migrate(database))

	for _, table := range []string{"courses", "user_profile"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_EnumConstraints(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO courses
		(id, user_id, name, knowledge_level, study_pace, goal, created_at, updated_at)
		VALUES ('c1','u1','Test','expert','moderate','academic','2026-01-01T00:00:00Z','2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid knowledge_level should violate the CHECK constraint")
}
