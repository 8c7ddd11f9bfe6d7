package seeders

import (
	"errors"
	"fmt"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAdmin creates the super admin account when no user has that email.
// An existing account is promoted and reactivated but its password is kept.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		configslog.SLog.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, admin seeding skipped.")
		return nil
	}

	var existing models.UserProfile
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role == models.RoleSuperAdmin && existing.IsActive {
			configslog.SLog.Debugf("Admin '%s' already present.", email)
			return nil
		}
		updates := map[string]interface{}{"role": models.RoleSuperAdmin, "is_active": true}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Admin promotion failed", zap.String("email", email), zap.Error(err))
			return fmt.Errorf("admin promotion failed: %w", err)
		}
		configslog.SLog.Infof("Existing user '%s' promoted to super admin.", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Admin lookup failed", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("admin password hashing failed: %w", err)
	}
	admin := models.UserProfile{
		Email:        email,
		FullName:     "Super Admin",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Admin creation failed", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("admin creation failed: %w", err)
	}
	configslog.SLog.Infof("Super admin '%s' created (ID: %s).", email, admin.ID)
	return nil
}
