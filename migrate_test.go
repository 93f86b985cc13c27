package tweetbox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantonshire/tweetbox/database"
	"github.com/pantonshire/tweetbox/logging"
	"github.com/pantonshire/tweetbox/model"
)

func TestOpenDatabaseMigrates(t *testing.T) {
	config := database.Config{Dialect: database.SQLite, Database: filepath.Join(t.TempDir(), "migrate.db")}
	db, err := OpenDatabase(config, logging.Discard(), true)
	require.NoError(t, err)
	defer db.Close()

	for _, m := range model.Models() {
		assert.True(t, db.HasTable(m), "missing table for %T", m)
	}

	// Running it again is a no-op.
	require.NoError(t, Migrate(db))
}

func TestForeignKeyPlan(t *testing.T) {
	plan := ForeignKeyPlan()
	require.Len(t, plan, 7)

	var tweetKeys int
	for _, line := range plan {
		if strings.HasPrefix(line, "Tweet: ") {
			tweetKeys++
			assert.Equal(t, "Tweet: user_id REFERENCES users(user_id) ON DELETE cascade ON UPDATE cascade", line)
		}
	}
	assert.Equal(t, 1, tweetKeys)
}
