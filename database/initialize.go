package database

import (
	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/database/migrations"
	"undangan.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs the requested steps inside one transaction. Nothing is
// kept when any step fails.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return nil
	}

	configslog.SLog.Info("Database initialization starting...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not set, skipping migrations.")
		}

		if seed {
			cfg := configs.GetConfig()
			if err := CheckAndRunSeeders(tx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not set, skipping seeders.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Database initialization rolled back", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Database initialization completed.")
	return nil
}

// RunMigrationsInOrder migrates parents before children so foreign keys resolve.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"themes", migrations.MigrateThemesTable},
		{"users", migrations.MigrateUsersTable},
		{"invitations", migrations.MigrateInvitationsTables},
		{"guests", migrations.MigrateGuestsTable},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> running %s migrations", step.name)
		if err := step.run(db); err != nil {
			return err
		}
	}
	configslog.SLog.Info("All migrations completed.")
	return nil
}

// CheckAndRunSeeders seeds the built-in themes and the super admin.
func CheckAndRunSeeders(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := seeders.SeedThemes(db); err != nil {
		return err
	}
	if err := seeders.SeedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	configslog.SLog.Info("All seeders completed.")
	return nil
}
