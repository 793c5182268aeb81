package database

import (
	"path/filepath"
	"testing"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := config.DatabaseConfig{
		Type:         "sqlite",
		DatabasePath: filepath.Join(dir, "cinebot.db"),
		MaxOpenConns: 1,
	}

	conn, err := Connect(cfg)
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
	assert.FileExists(t, cfg.DatabasePath)
}

func TestConnect_Unsupported(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Type: "mysql"})
	assert.Error(t, err)
}

func TestInitializeAndClose(t *testing.T) {
	require.NoError(t, Initialize(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:"}))
	assert.NotNil(t, GetDB())
	require.NoError(t, Close())
	assert.Nil(t, GetDB())
	assert.NoError(t, Close())
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db/x", PostgresDSN(config.DatabaseConfig{URL: "postgres://u:p@db/x"}))
	assert.Equal(t,
		"host=localhost user=cinebot password=secret dbname=cinebot port=5432 sslmode=disable TimeZone=UTC",
		PostgresDSN(config.DatabaseConfig{Username: "cinebot", Password: "secret", Database: "cinebot"}))
}
