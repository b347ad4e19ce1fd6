package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/undercop/finfinal/internal/models"
)

// Open opens the local GORM store. A postgres:// DSN uses the Postgres
// driver with PreferSimpleProtocol (avoids 42P05 "prepared statement already
// exists" behind connection poolers); anything else is treated as a sqlite
// file path, which is the default for a single-user gateway.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// AutoMigrate runs migrations for the gateway's local tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.IntradayPrice{},
		&models.TradeJournalEntry{},
	)
}
