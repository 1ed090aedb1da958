package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/models"
)

// Migrate creates or updates the marketplace tables.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Contractor{},
		&models.Job{},
		&models.Booking{},
		&models.Dispute{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Log.Info("migrations applied")
	return nil
}
