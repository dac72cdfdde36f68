package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AkaakuHub/moshi-bingo/models"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

var DB *gorm.DB

// SetupDatabase connects to Postgres and runs migrations.
func SetupDatabase(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	DB = db

	if err := Migrate(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	logger.Info("database connected and migrated")
	return db
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Game{},
		&models.User{},
		&models.BingoCard{},
	)
}
