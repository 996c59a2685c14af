package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rohanbuilds/jobprep/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables. Also used by tests against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.JobApplication{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
