package migrations

import (
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"gorm.io/gorm"
)

// MigrateInvitationsTables creates invitations and its child tables.
func MigrateInvitationsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating invitation tables...")

	if err := db.AutoMigrate(&models.Invitation{}); err != nil {
		configslog.SLog.Errorf("invitations migration failed: %v", err)
		return fmt.Errorf("invitations migration failed: %w", err)
	}
	if err := db.AutoMigrate(&models.LoveStoryMilestone{}, &models.BankAccount{}); err != nil {
		configslog.SLog.Errorf("love_story/bank_accounts migration failed: %v", err)
		return fmt.Errorf("love_story/bank_accounts migration failed: %w", err)
	}

	configslog.SLog.Info("invitation tables migrated.")
	return nil
}
