package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured store and runs Migrate.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer; one connection keeps transactions
		// from failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(1 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema if absent. Safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AvailabilityTemplate{}, &models.Reservation{}, &models.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial unique index: at most one live reservation per (date, time_slot)
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active_slot
		ON reservations (date, time_slot)
		WHERE status <> 'cancelled'
	`).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}

	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
