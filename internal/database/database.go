// Package database wires GORM to the configured storage backend. The
// server deployment runs on postgres with versioned SQL migrations; the
// local single-node deployment runs on sqlite with auto-migration.
package database

import (
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"papertrade/internal/config"
	"papertrade/internal/logger"
	"papertrade/internal/models"
)

// Manager handles database connections and schema migrations.
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
}

// NewManager opens a database connection for the configured driver.
func NewManager(cfg *config.Config) (*Manager, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn}), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		pgURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
		return &Manager{db: db, driver: "postgres", dsn: pgURL}, nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &Manager{db: db, driver: "sqlite"}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", cfg.DBDriver)
	}
}

// Migrate brings the schema up to date. Postgres applies the versioned SQL
// migrations from the migrations/ directory; sqlite auto-migrates the models.
func (m *Manager) Migrate() error {
	log := logger.Get()

	if m.driver == "sqlite" {
		log.Info("Auto-migrating sqlite schema...")
		return m.db.AutoMigrate(
			&models.User{},
			&models.Portfolio{},
			&models.Position{},
			&models.Order{},
		)
	}

	log.Info("Running database migrations...")
	mig, err := migrate.New("file://migrations", m.dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			log.Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			log.Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
