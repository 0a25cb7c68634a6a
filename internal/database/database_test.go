package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/models"
)

func TestConnect_SQLiteFallback(t *testing.T) {
	cfg := config.Config{
		Environment:  "development",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.LogEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.CompanyInfo{}))
}

func TestConnect_ProductionWithoutURL(t *testing.T) {
	cfg := config.Config{Environment: "production", DatabasePath: "ignored.db"}

	db, err := Connect(cfg)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrDatabaseNotConfigured)
}

func TestOpenSQLite_Memory(t *testing.T) {
	db, err := OpenSQLite("file::memory:?cache=shared", false)
	require.NoError(t, err)
	assert.NotNil(t, db)
}
