package database

import (
	"log"

	"stocktake-backend/internal/config"
	"stocktake-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// Migrate runs AutoMigrate for every model. Split out so tests can run the
// same migration against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.StorageLocation{},
		&models.Part{},
		&models.StockTakingSession{},
		&models.StockTakingRecord{},
		&models.AuditLog{},
	)
}
