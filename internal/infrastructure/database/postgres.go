package database

import (
	"fmt"
	"strings"

	"github.com/you/portfoliosvc/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a database connection. DSNs starting with "sqlite:" or "file:"
// use the embedded SQLite driver, everything else goes to PostgreSQL.
// TranslateError maps engine specific constraint codes to gorm errors.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite:")), config)
	case strings.HasPrefix(dsn, "file:"):
		return gorm.Open(sqlite.Open(dsn), config)
	default:
		return gorm.Open(postgres.Open(dsn), config)
	}
}

// Ping verifies the underlying connection is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// MigrateProjects creates the sector and project tables
func MigrateProjects(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBSector{}, &repositories.DBProject{}); err != nil {
		return fmt.Errorf("failed to migrate project tables: %w", err)
	}
	return nil
}

// MigrateAccounts creates the users table
func MigrateAccounts(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
