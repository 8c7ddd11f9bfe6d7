package migrations

import (
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"gorm.io/gorm"
)

func MigrateThemesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating themes table...")

	if err := db.AutoMigrate(&models.Theme{}); err != nil {
		configslog.SLog.Errorf("themes migration failed: %v", err)
		return fmt.Errorf("themes migration failed: %w", err)
	}

	configslog.SLog.Info("themes table migrated.")
	return nil
}
