package migrations

import (
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"gorm.io/gorm"
)

// MigrateUsersTable needs the themes table for the assigned theme key.
func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating user_profiles table...")

	if err := db.AutoMigrate(&models.UserProfile{}); err != nil {
		configslog.SLog.Errorf("user_profiles migration failed: %v", err)
		return fmt.Errorf("user_profiles migration failed: %w", err)
	}

	configslog.SLog.Info("user_profiles table migrated.")
	return nil
}
