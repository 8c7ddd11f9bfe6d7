package seeders

import (
	"errors"
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultThemes are the built-in themes. Their ids are fixed so new
// invitations can point at theme "1" before any admin action.
var DefaultThemes = []models.Theme{
	{
		BaseModel:   models.BaseModel{ID: "1"},
		Name:        "Elegant Classic",
		Description: "Nuansa klasik dengan tipografi serif dan warna emas.",
		Category:    models.ThemeCategoryElegant,
		Slug:        "default",
		IsActive:    true,
	},
	{
		BaseModel:   models.BaseModel{ID: "2"},
		Name:        "Modern Minimal",
		Description: "Tata letak bersih dengan aksen warna tegas.",
		Category:    models.ThemeCategoryModern,
		Slug:        "modern",
		IsActive:    true,
	},
	{
		BaseModel:   models.BaseModel{ID: "3"},
		Name:        "Rustic Garden",
		Description: "Sentuhan kayu dan dedaunan untuk pesta di taman.",
		Category:    models.ThemeCategoryRustic,
		Slug:        "rustic",
		IsActive:    true,
	},
}

// SeedThemes inserts the built-in themes that are missing. Existing rows are
// left untouched so admin edits survive reseeding.
func SeedThemes(db *gorm.DB) error {
	created := 0
	for _, theme := range DefaultThemes {
		var existing models.Theme
		err := db.Where("id = ?", theme.ID).First(&existing).Error
		if err == nil {
			configslog.SLog.Debugf("Theme '%s' already exists, skipping.", theme.Slug)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Theme lookup failed", zap.String("id", theme.ID), zap.Error(err))
			return fmt.Errorf("theme lookup failed: %w", err)
		}

		row := theme
		if err := db.Create(&row).Error; err != nil {
			configslog.Log.Error("Theme seeding failed", zap.String("slug", theme.Slug), zap.Error(err))
			return fmt.Errorf("theme seeding failed: %w", err)
		}
		created++
	}
	configslog.SLog.Infof("Theme seeding done, %d created.", created)
	return nil
}
