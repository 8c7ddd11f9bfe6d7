package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/queryparams"
	"undangan.link/repositories"
	"undangan.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound          UserServiceError = "pengguna tidak ditemukan"
	ErrUserInvalidInput      UserServiceError = "data pengguna tidak valid"
	ErrUserEmailTaken        UserServiceError = "email sudah terdaftar"
	ErrUserSelfAction        UserServiceError = "tidak dapat melakukan tindakan ini pada akun sendiri"
	ErrUserListFailed        UserServiceError = "gagal memuat daftar pengguna"
	ErrUserCreationFailed    UserServiceError = "gagal membuat pengguna"
	ErrUserUpdateFailed      UserServiceError = "gagal memperbarui pengguna"
	ErrUserDeletionFailed    UserServiceError = "gagal menghapus pengguna"
	ErrPasswordHashingFailed UserServiceError = "gagal memproses kata sandi"
)

// ProvisionInput is the admin "create account" form.
type ProvisionInput struct {
	Email    string `form:"email" validate:"required,email,max=150"`
	Password string `form:"password" validate:"required,min=6,max=72"`
	FullName string `form:"fullName" validate:"required,max=150"`
	ThemeID  string `form:"themeId" validate:"max=36"`
}

type IUserService interface {
	ListUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)
	ToggleActive(ctx context.Context, actorID, id string) (bool, error)
	AssignTheme(ctx context.Context, userID, themeID string) error
	ProvisionUser(ctx context.Context, input ProvisionInput) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type UserService struct {
	db        *gorm.DB
	repo      repositories.IUserRepository
	themeRepo repositories.IThemeRepository
	now       func() time.Time
}

func NewUserService() IUserService {
	return NewUserServiceWithDB(configsdatabase.GetDB())
}

func NewUserServiceWithDB(db *gorm.DB) *UserService {
	return &UserService{
		db:        db,
		repo:      repositories.NewUserRepositoryTx(db),
		themeRepo: repositories.NewThemeRepositoryTx(db),
		now:       time.Now,
	}
}

func (s *UserService) ListUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	users, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserListFailed, err)
	}
	return &queryparams.PaginatedResult{
		Data: users,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ToggleActive flips the account's active flag and returns the new value.
func (s *UserService) ToggleActive(ctx context.Context, actorID, id string) (bool, error) {
	if actorID == id {
		return false, ErrUserSelfAction
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return false, err
	}
	active := !user.IsActive
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_active": active}); err != nil {
		configslog.Log.Error("UserService.ToggleActive failed", zap.String("id", id), zap.Error(err))
		return user.IsActive, fmt.Errorf("%w: %v", ErrUserUpdateFailed, err)
	}
	configslog.SLog.Infof("User %s active=%t", id, active)
	return active, nil
}

// AssignTheme pins the user to themeID. An empty themeID lifts the restriction.
func (s *UserService) AssignTheme(ctx context.Context, userID, themeID string) error {
	themeID = strings.TrimSpace(themeID)
	var value interface{}
	if themeID != "" {
		if _, err := s.themeRepo.FindByID(ctx, themeID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrThemeNotFound
			}
			return fmt.Errorf("%w: %v", ErrUserUpdateFailed, err)
		}
		value = themeID
	}
	if err := s.repo.UpdateFields(ctx, userID, map[string]interface{}{"assigned_theme_id": value}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		configslog.Log.Error("UserService.AssignTheme failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUserUpdateFailed, err)
	}
	configslog.SLog.Infof("User %s assigned theme %q", userID, themeID)
	return nil
}

// ProvisionUser creates an active account and, when a theme is given, pins
// the account to it and prepares the invitation with that theme. Either
// everything is stored or nothing is.
func (s *UserService) ProvisionUser(ctx context.Context, input ProvisionInput) (*models.UserProfile, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.ThemeID = strings.TrimSpace(input.ThemeID)
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserInvalidInput, validationMessage(err))
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrPasswordHashingFailed
	}

	user := &models.UserProfile{
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         models.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepoTx := repositories.NewUserRepositoryTx(tx)
		themeRepoTx := repositories.NewThemeRepositoryTx(tx)
		invRepoTx := repositories.NewInvitationRepositoryTx(tx)

		if _, err := userRepoTx.FindByEmail(ctx, input.Email); err == nil {
			return ErrUserEmailTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if input.ThemeID != "" {
			if _, err := themeRepoTx.FindByID(ctx, input.ThemeID); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrThemeNotFound
				}
				return err
			}
			themeID := input.ThemeID
			user.AssignedThemeID = &themeID
		}

		if err := userRepoTx.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserEmailTaken
			}
			return err
		}

		inv := NewDefaultInvitation(user.ID, input.ThemeID, s.now())
		return invRepoTx.SaveComplete(ctx, &inv)
	})
	if txErr != nil {
		var themeErr ThemeServiceError
		var userErr UserServiceError
		if errors.As(txErr, &themeErr) || errors.As(txErr, &userErr) {
			return nil, txErr
		}
		configslog.Log.Error("UserService.ProvisionUser transaction failed", zap.String("email", input.Email), zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrUserCreationFailed, txErr)
	}
	configslog.SLog.Infof("User provisioned: %s (%s)", user.Email, user.ID)
	return user, nil
}

// DeleteUser removes the account with its invitation, guests and lists.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrUserSelfAction
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		configslog.Log.Error("UserService.DeleteUser failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUserDeletionFailed, err)
	}
	configslog.SLog.Infof("User deleted: %s", id)
	return nil
}

var _ IUserService = (*UserService)(nil)
