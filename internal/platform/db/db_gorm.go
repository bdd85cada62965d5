// Package db opens the gorm handle for the record store.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/platform/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a gorm handle for a DSN. Tests substitute it.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN builds the connection string for cfg.Driver.
// For sqlite it is the file path with foreign keys enabled.
func BuildDSN(cfg config.DBConfig) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
	return cfg.Path + "?_foreign_keys=on"
}

// OpenerFor returns the gorm opener matching driver.
func OpenerFor(driver string) (Opener, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
// At least one attempt is always made.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// Open connects with retry and, when cfg.AutoMigrate is set, migrates the
// employees table including its unique email index.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		// one writer at a time avoids SQLITE_BUSY under concurrent requests
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if cfg.AutoMigrate {
		if err := migrateOrClose(db, Migrate); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// migrateOrClose runs migrate and closes db when it fails, since the caller
// never receives the handle.
func migrateOrClose(db *gorm.DB, migrate func(*gorm.DB) error) error {
	if err := migrate(db); err != nil {
		if cerr := Close(db); cerr != nil {
			log.Printf("DB close after failed migration: %v", cerr)
		}
		return err
	}
	return nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Employee{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
