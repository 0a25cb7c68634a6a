package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/models"
)

// ErrDatabaseNotConfigured is returned when production runs without DATABASE_URL.
var ErrDatabaseNotConfigured = errors.New("database not configured: set DATABASE_URL")

// Connect opens the record store described by cfg. Postgres is used when
// DATABASE_URL is set; development falls back to a local SQLite file.
func Connect(cfg config.Config) (*gorm.DB, error) {
	switch {
	case cfg.DatabaseURL != "":
		return OpenPostgres(cfg.DatabaseURL, cfg.Debug)
	case cfg.IsProduction():
		return nil, ErrDatabaseNotConfigured
	default:
		return OpenSQLite(cfg.DatabasePath, cfg.Debug)
	}
}

// OpenSQLite bootstraps a SQLite database using the provided filesystem path.
func OpenSQLite(dbPath string, debug bool) (*gorm.DB, error) {
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000&_journal_mode=WAL"
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	return db, nil
}

// OpenPostgres connects to the Postgres instance behind dsn.
func OpenPostgres(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the site uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Project{},
		&models.Image{},
		&models.Video{},
		&models.CompanyInfo{},
		&models.HomeBanner{},
		&models.InstitutionalText{},
		&models.ContactMessage{},
		&models.LogEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func gormConfig(debug bool) *gorm.Config {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}
