package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Connect opens the database described by cfg and applies the pool settings.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	}
	if cfg.LogQueries {
		gormCfg.Logger = gormLogger.Default.LogMode(gormLogger.Info)
	}

	var conn *gorm.DB
	var err error
	switch cfg.Type {
	case "postgres":
		conn, err = connectPostgres(cfg, gormCfg)
	case "sqlite", "":
		conn, err = connectSQLite(cfg, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Type, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.Info("database connected", "type", cfg.Type)
	return conn, nil
}

func connectPostgres(cfg config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(PostgresDSN(cfg)), gormCfg)
}

// PostgresDSN returns cfg.URL when set, otherwise a key/value DSN built from
// the individual fields.
func PostgresDSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		host, cfg.Username, cfg.Password, cfg.Database, port)
}

func connectSQLite(cfg config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	path := cfg.DatabasePath
	if path == "" {
		path = filepath.Join(cfg.DataDir, "cinebot.db")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return gorm.Open(sqlite.Open(path), gormCfg)
}

// Initialize connects with cfg and stores the connection for GetDB.
func Initialize(cfg config.DatabaseConfig) error {
	conn, err := Connect(cfg)
	if err != nil {
		return err
	}
	dbMu.Lock()
	db = conn
	dbMu.Unlock()
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the stored connection.
func Close() error {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}
