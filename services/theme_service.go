package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"

	"go.uber.org/zap"
)

type ThemeServiceError string

func (e ThemeServiceError) Error() string { return string(e) }

const (
	ErrThemeNotFound       ThemeServiceError = "tema tidak ditemukan"
	ErrThemeLocked         ThemeServiceError = "tema telah dikunci oleh admin"
	ErrThemeUserNotFound   ThemeServiceError = "pengguna tidak ditemukan"
	ErrThemeInvalidInput   ThemeServiceError = "data tema tidak valid"
	ErrThemeListFailed     ThemeServiceError = "gagal memuat daftar tema"
	ErrThemeCreationFailed ThemeServiceError = "gagal membuat tema"
	ErrThemeUpdateFailed   ThemeServiceError = "gagal memperbarui tema"
	ErrThemeDeletionFailed ThemeServiceError = "gagal menghapus tema"
	ErrThemeSelectFailed   ThemeServiceError = "gagal memilih tema"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

const (
	themeTemplatePrefix = "invitation/themes/"
	defaultThemeSlug    = "default"
)

var themeTemplates = map[string]string{
	"default": themeTemplatePrefix + "default",
	"modern":  themeTemplatePrefix + "modern",
	"rustic":  themeTemplatePrefix + "rustic",
}

// ResolveTemplate maps a theme slug to its view. Unknown slugs render the
// default template.
func ResolveTemplate(slug string) string {
	if tpl, ok := themeTemplates[slug]; ok {
		return tpl
	}
	return themeTemplates[defaultThemeSlug]
}

// ThemeInput is the admin theme form.
type ThemeInput struct {
	Name         string `form:"name" validate:"required,max=100"`
	Description  string `form:"description" validate:"max=2000"`
	ThumbnailURL string `form:"thumbnail_url" validate:"max=500"`
	Category     string `form:"category" validate:"required,oneof=elegant modern rustic minimalist floral"`
	Slug         string `form:"slug" validate:"required,max=50"`
	IsActive     bool   `form:"-"`
}

type IThemeService interface {
	ListThemes(ctx context.Context, category string) ([]models.Theme, error)
	ListThemesForUser(ctx context.Context, userID, category string) ([]models.Theme, error)
	GetTheme(ctx context.Context, id string) (*models.Theme, error)
	SelectTheme(ctx context.Context, userID, themeID string) error
	CreateTheme(ctx context.Context, input ThemeInput) (*models.Theme, error)
	UpdateTheme(ctx context.Context, id string, input ThemeInput) (*models.Theme, error)
	DeleteTheme(ctx context.Context, id string) error
	ToggleTheme(ctx context.Context, id string) (bool, error)
	SetThumbnail(ctx context.Context, id, url string) error
}

type ThemeService struct {
	repo     repositories.IThemeRepository
	userRepo repositories.IUserRepository
	invRepo  repositories.IInvitationRepository
	now      func() time.Time
}

func NewThemeService() IThemeService {
	return NewThemeServiceWith(
		repositories.NewThemeRepository(),
		repositories.NewUserRepository(),
		repositories.NewInvitationRepository(),
		time.Now,
	)
}

func NewThemeServiceWith(repo repositories.IThemeRepository, userRepo repositories.IUserRepository, invRepo repositories.IInvitationRepository, now func() time.Time) *ThemeService {
	if now == nil {
		now = time.Now
	}
	return &ThemeService{repo: repo, userRepo: userRepo, invRepo: invRepo, now: now}
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == CategoryAll {
		return ""
	}
	return category
}

// ListThemes returns every theme, newest first. Used by the admin.
func (s *ThemeService) ListThemes(ctx context.Context, category string) ([]models.Theme, error) {
	themes, err := s.repo.FindAll(ctx, repositories.ThemeFilter{Category: normalizeCategory(category)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeListFailed, err)
	}
	return themes, nil
}

// ListThemesForUser returns the themes a user may pick. A user pinned to a
// theme sees only that theme whatever the category.
func (s *ThemeService) ListThemesForUser(ctx context.Context, userID, category string) ([]models.Theme, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrThemeUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrThemeListFailed, err)
	}

	if user.HasAssignedTheme() {
		theme, err := s.repo.FindByID(ctx, *user.AssignedThemeID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				configslog.SLog.Warnf("User %s is pinned to missing theme %s", userID, *user.AssignedThemeID)
				return []models.Theme{}, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrThemeListFailed, err)
		}
		return []models.Theme{*theme}, nil
	}

	themes, err := s.repo.FindAll(ctx, repositories.ThemeFilter{
		Category:   normalizeCategory(category),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeListFailed, err)
	}
	return themes, nil
}

func (s *ThemeService) GetTheme(ctx context.Context, id string) (*models.Theme, error) {
	theme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}
	return theme, nil
}

// SelectTheme stores themeID on the user's invitation. A pinned user can
// only select the pinned theme; a refused selection changes nothing.
func (s *ThemeService) SelectTheme(ctx context.Context, userID, themeID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrThemeUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrThemeSelectFailed, err)
	}
	if user.HasAssignedTheme() && *user.AssignedThemeID != themeID {
		return ErrThemeLocked
	}
	if _, err := s.GetTheme(ctx, themeID); err != nil {
		return err
	}

	inv, err := s.invRepo.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		fresh := NewDefaultInvitation(userID, themeID, s.now())
		if err := s.invRepo.SaveComplete(ctx, &fresh); err != nil {
			configslog.Log.Error("ThemeService.SelectTheme create failed", zap.String("user_id", userID), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrThemeSelectFailed, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %v", ErrThemeSelectFailed, err)
	default:
		if err := s.invRepo.UpdateFields(ctx, inv.ID, map[string]interface{}{"theme_id": themeID}); err != nil {
			configslog.Log.Error("ThemeService.SelectTheme update failed", zap.String("user_id", userID), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrThemeSelectFailed, err)
		}
	}
	configslog.SLog.Infof("User %s selected theme %s", userID, themeID)
	return nil
}

func cleanThemeInput(input ThemeInput) (ThemeInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.ThumbnailURL = strings.TrimSpace(input.ThumbnailURL)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	if input.Slug == "" {
		input.Slug = defaultThemeSlug
	}
	if err := validate.Struct(input); err != nil {
		return input, fmt.Errorf("%w: %s", ErrThemeInvalidInput, validationMessage(err))
	}
	return input, nil
}

func (s *ThemeService) CreateTheme(ctx context.Context, input ThemeInput) (*models.Theme, error) {
	input, err := cleanThemeInput(input)
	if err != nil {
		return nil, err
	}
	theme := &models.Theme{
		Name:         input.Name,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		Category:     input.Category,
		Slug:         input.Slug,
		IsActive:     input.IsActive,
	}
	if err := s.repo.Create(ctx, theme); err != nil {
		configslog.Log.Error("ThemeService.CreateTheme failed", zap.String("name", input.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrThemeCreationFailed, err)
	}
	configslog.SLog.Infof("Theme created: %s (%s)", theme.Name, theme.ID)
	return theme, nil
}

func (s *ThemeService) UpdateTheme(ctx context.Context, id string, input ThemeInput) (*models.Theme, error) {
	input, err := cleanThemeInput(input)
	if err != nil {
		return nil, err
	}
	theme, err := s.GetTheme(ctx, id)
	if err != nil {
		return nil, err
	}
	theme.Name = input.Name
	theme.Description = input.Description
	theme.Category = input.Category
	theme.Slug = input.Slug
	theme.IsActive = input.IsActive
	if input.ThumbnailURL != "" {
		theme.ThumbnailURL = input.ThumbnailURL
	}
	if err := s.repo.Update(ctx, theme); err != nil {
		configslog.Log.Error("ThemeService.UpdateTheme failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrThemeUpdateFailed, err)
	}
	return theme, nil
}

// DeleteTheme removes a theme. Users pinned to it become unrestricted.
func (s *ThemeService) DeleteTheme(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrThemeNotFound
		}
		configslog.Log.Error("ThemeService.DeleteTheme failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrThemeDeletionFailed, err)
	}
	configslog.SLog.Infof("Theme deleted: %s", id)
	return nil
}

// ToggleTheme flips the active flag and returns the new value.
func (s *ThemeService) ToggleTheme(ctx context.Context, id string) (bool, error) {
	theme, err := s.GetTheme(ctx, id)
	if err != nil {
		return false, err
	}
	active := !theme.IsActive
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_active": active}); err != nil {
		configslog.Log.Error("ThemeService.ToggleTheme failed", zap.String("id", id), zap.Error(err))
		return theme.IsActive, fmt.Errorf("%w: %v", ErrThemeUpdateFailed, err)
	}
	return active, nil
}

func (s *ThemeService) SetThumbnail(ctx context.Context, id, url string) error {
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"thumbnail_url": url}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrThemeNotFound
		}
		return fmt.Errorf("%w: %v", ErrThemeUpdateFailed, err)
	}
	return nil
}

var _ IThemeService = (*ThemeService)(nil)
