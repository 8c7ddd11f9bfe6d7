package repositories

import (
	"context"
	"errors"

	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ThemeFilter narrows FindAll.
type ThemeFilter struct {
	Category   string
	ActiveOnly bool
}

// IThemeRepository is the persistence contract for themes.
type IThemeRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	FindByID(ctx context.Context, id string) (*models.Theme, error)
	FindBySlug(ctx context.Context, slug string) (*models.Theme, error)
	FindAll(ctx context.Context, filter ThemeFilter) ([]models.Theme, error)
	Update(ctx context.Context, theme *models.Theme) error
	UpdateFields(ctx context.Context, id string, data map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// ThemeRepository implements IThemeRepository.
type ThemeRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Theme]
}

// NewThemeRepository builds the repository on the shared connection.
func NewThemeRepository() IThemeRepository {
	return NewThemeRepositoryTx(configsdatabase.GetDB())
}

// NewThemeRepositoryTx builds the repository on the given handle.
func NewThemeRepositoryTx(tx *gorm.DB) IThemeRepository {
	return &ThemeRepository{db: tx, base: NewBaseRepository[models.Theme](tx)}
}

func (r *ThemeRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create inserts a theme.
func (r *ThemeRepository) Create(ctx context.Context, theme *models.Theme) error {
	if theme == nil {
		return errors.New("theme cannot be nil")
	}
	return r.getDB(ctx).Create(theme).Error
}

// FindByID loads a theme.
func (r *ThemeRepository) FindByID(ctx context.Context, id string) (*models.Theme, error) {
	return r.base.FindByID(ctx, id)
}

// FindBySlug loads the newest theme with the given slug.
func (r *ThemeRepository) FindBySlug(ctx context.Context, slug string) (*models.Theme, error) {
	var theme models.Theme
	err := r.getDB(ctx).Where("slug = ?", slug).Order("created_at desc").First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &theme, nil
}

// FindAll lists themes newest first.
func (r *ThemeRepository) FindAll(ctx context.Context, filter ThemeFilter) ([]models.Theme, error) {
	var themes []models.Theme
	query := r.getDB(ctx).Model(&models.Theme{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at desc").Find(&themes).Error; err != nil {
		configslog.Log.Error("ThemeRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return themes, nil
}

// Update saves every column of the theme.
func (r *ThemeRepository) Update(ctx context.Context, theme *models.Theme) error {
	if theme == nil || theme.ID == "" {
		return errors.New("theme to update is not valid")
	}
	return r.getDB(ctx).Save(theme).Error
}

// UpdateFields updates selected columns.
func (r *ThemeRepository) UpdateFields(ctx context.Context, id string, data map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.Theme{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a theme. Users pinned to it lose the restriction.
func (r *ThemeRepository) Delete(ctx context.Context, id string) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserProfile{}).Where("assigned_theme_id = ?", id).
			Update("assigned_theme_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Theme{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountAll returns the number of themes.
func (r *ThemeRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

// CountActive returns the number of active themes.
func (r *ThemeRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Theme{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

var _ IThemeRepository = (*ThemeRepository)(nil)
