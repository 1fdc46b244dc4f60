package database

import (
	"log"

	"github.com/cityteam/guests-api/internal/config"
	"github.com/cityteam/guests-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Facility{},
		&models.Guest{},
		&models.Registration{},
		&models.Ban{},
		&models.Template{},
		&models.Staff{},
		&models.APIKey{},
	)
}
