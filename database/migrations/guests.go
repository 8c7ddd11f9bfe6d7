package migrations

import (
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"gorm.io/gorm"
)

func MigrateGuestsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating guests table...")

	if err := db.AutoMigrate(&models.Guest{}); err != nil {
		configslog.SLog.Errorf("guests migration failed: %v", err)
		return fmt.Errorf("guests migration failed: %w", err)
	}

	configslog.SLog.Info("guests table migrated.")
	return nil
}
