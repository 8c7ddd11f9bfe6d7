package repositories

import (
	"context"
	"errors"
	"strings"

	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository is the persistence contract for user profiles.
type IUserRepository interface {
	Create(ctx context.Context, user *models.UserProfile) error
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.UserProfile, int64, error)
	UpdateFields(ctx context.Context, id string, data map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.UserProfile]
}

// NewUserRepository builds the repository on the shared connection.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configsdatabase.GetDB())
}

// NewUserRepositoryTx builds the repository on the given handle.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.UserProfile](tx)}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create inserts a user profile. Emails are stored lower-cased.
func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	if user == nil || user.Email == "" {
		return errors.New("user without email cannot be created")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.getDB(ctx).Create(user).Error
}

// FindByID loads a user profile.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return r.base.FindByID(ctx, id)
}

// FindByEmail loads a user profile by e-mail, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := r.getDB(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindAllPaginated lists users newest first, searching name and e-mail.
func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.UserProfile, int64, error) {
	var users []models.UserProfile
	var totalCount int64

	query := r.getDB(ctx).Model(&models.UserProfile{})
	if term := strings.TrimSpace(params.Name); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("UserRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return users, 0, nil
	}

	allowedSortColumns := map[string]string{
		"created_at": "created_at",
		"full_name":  "full_name",
		"email":      "email",
		"last_login": "last_login",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	orderBy := params.OrderBy
	if orderBy != "asc" {
		orderBy = "desc"
	}

	err := query.Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return users, totalCount, nil
}

// UpdateFields updates selected columns.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, data map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.UserProfile{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.UpdateFields: DB error", zap.String("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user together with the invitation tree it owns.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewInvitationRepositoryTx(tx).DeleteByUserID(ContextWithTx(ctx, tx), id); err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.UserProfile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountAll returns the number of user profiles.
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IUserRepository = (*UserRepository)(nil)
