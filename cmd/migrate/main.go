package main

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appconfig "github.com/AkaakuHub/moshi-bingo/config"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// Standalone schema migration, for deploys that run migrations separately
// from the server process.
func main() {
	cfg := appconfig.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	if err := appconfig.Migrate(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Info("database migration completed")
}
