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

// IGuestRepository is the persistence contract for guests.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id string) (*models.Guest, error)
	FindByInvitationID(ctx context.Context, invitationID string) ([]models.Guest, error)
	UpdateStatus(ctx context.Context, id string, status models.GuestStatus) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, invitationID string) (map[models.GuestStatus]int64, error)
}

// GuestRepository implements IGuestRepository with gorm.
type GuestRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Guest]
}

// NewGuestRepository builds the repository on the shared connection.
func NewGuestRepository() IGuestRepository {
	return NewGuestRepositoryTx(configsdatabase.GetDB())
}

// NewGuestRepositoryTx builds the repository on the given handle (tx or test db).
func NewGuestRepositoryTx(tx *gorm.DB) IGuestRepository {
	return &GuestRepository{db: tx, base: NewBaseRepository[models.Guest](tx)}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create inserts a guest.
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.InvitationID == "" {
		return errors.New("guest without invitation cannot be created")
	}
	return r.getDB(ctx).Create(guest).Error
}

// FindByID loads a guest.
func (r *GuestRepository) FindByID(ctx context.Context, id string) (*models.Guest, error) {
	return r.base.FindByID(ctx, id)
}

// FindByInvitationID lists an invitation's guests, newest first.
func (r *GuestRepository) FindByInvitationID(ctx context.Context, invitationID string) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.getDB(ctx).
		Where("invitation_id = ?", invitationID).
		Order("created_at desc").
		Find(&guests).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindByInvitationID: DB error", zap.String("invitation_id", invitationID), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// UpdateStatus overwrites the status column.
func (r *GuestRepository) UpdateStatus(ctx context.Context, id string, status models.GuestStatus) error {
	result := r.getDB(ctx).Model(&models.Guest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("GuestRepository.UpdateStatus: DB error", zap.String("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a guest.
func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	return r.base.DeleteByID(ctx, id)
}

// CountByStatus groups an invitation's guests by status.
func (r *GuestRepository) CountByStatus(ctx context.Context, invitationID string) (map[models.GuestStatus]int64, error) {
	var rows []struct {
		Status models.GuestStatus
		Total  int64
	}
	err := r.getDB(ctx).Model(&models.Guest{}).
		Select("status, count(*) as total").
		Where("invitation_id = ?", invitationID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.CountByStatus: DB error", zap.String("invitation_id", invitationID), zap.Error(err))
		return nil, err
	}
	counts := make(map[models.GuestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

var _ IGuestRepository = (*GuestRepository)(nil)
