package database

import (
	"poultry-backend/internal/config"
	"poultry-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects to Postgres and runs migrations. The resulting handle is
// shared process-wide; pooling is managed by database/sql underneath.
func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return Migrate(db)
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PoultryBatch{},
		&models.FeedRecord{},
		&models.ProductionRecord{},
		&models.HealthRecord{},
		&models.InventoryItem{},
		&models.SalesRecord{},
		&models.Expense{},
		&models.Notification{},
	)
}
