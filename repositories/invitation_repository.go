package repositories

import (
	"context"
	"errors"

	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IInvitationRepository is the persistence contract for invitations and
// their child lists.
type IInvitationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Invitation, error)
	FindByUserID(ctx context.Context, userID string) (*models.Invitation, error)
	SaveComplete(ctx context.Context, invitation *models.Invitation) error
	UpdateFields(ctx context.Context, id string, data map[string]interface{}) error
	DeleteByUserID(ctx context.Context, userID string) error
	CountAll(ctx context.Context) (int64, error)
}

// InvitationRepository implements IInvitationRepository.
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository builds the repository on the shared connection.
func NewInvitationRepository() IInvitationRepository {
	return NewInvitationRepositoryTx(configsdatabase.GetDB())
}

// NewInvitationRepositoryTx builds the repository on the given handle.
func NewInvitationRepositoryTx(tx *gorm.DB) IInvitationRepository {
	return &InvitationRepository{db: tx}
}

func (r *InvitationRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("LoveStory", func(q *gorm.DB) *gorm.DB { return q.Order("order_index asc") }).
		Preload("BankAccounts", func(q *gorm.DB) *gorm.DB { return q.Order("order_index asc") })
}

// FindByID loads an invitation with its ordered child lists.
func (r *InvitationRepository) FindByID(ctx context.Context, id string) (*models.Invitation, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := preloadChildren(r.getDB(ctx)).Where("id = ?", id).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// FindByUserID loads the user's invitation with its ordered child lists.
func (r *InvitationRepository) FindByUserID(ctx context.Context, userID string) (*models.Invitation, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := preloadChildren(r.getDB(ctx)).Where("user_id = ?", userID).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindByUserID: DB error", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// SaveComplete upserts the invitation (keyed by user) and replaces its love
// story and bank accounts in a single transaction.
func (r *InvitationRepository) SaveComplete(ctx context.Context, invitation *models.Invitation) error {
	if invitation == nil || invitation.UserID == "" {
		return errors.New("invitation without user cannot be saved")
	}

	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Invitation
		err := tx.Select("id", "created_at").Where("user_id = ?", invitation.UserID).First(&existing).Error
		switch {
		case err == nil:
			invitation.ID = existing.ID
			invitation.CreatedAt = existing.CreatedAt
			if err := tx.Omit(clause.Associations).Save(invitation).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(invitation).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.Where("invitation_id = ?", invitation.ID).Delete(&models.LoveStoryMilestone{}).Error; err != nil {
			return err
		}
		if len(invitation.LoveStory) > 0 {
			for i := range invitation.LoveStory {
				invitation.LoveStory[i].ID = ""
				invitation.LoveStory[i].InvitationID = invitation.ID
				invitation.LoveStory[i].OrderIndex = i
			}
			if err := tx.Create(&invitation.LoveStory).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("invitation_id = ?", invitation.ID).Delete(&models.BankAccount{}).Error; err != nil {
			return err
		}
		if len(invitation.BankAccounts) > 0 {
			for i := range invitation.BankAccounts {
				invitation.BankAccounts[i].ID = ""
				invitation.BankAccounts[i].InvitationID = invitation.ID
				invitation.BankAccounts[i].OrderIndex = i
			}
			if err := tx.Create(&invitation.BankAccounts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateFields updates selected columns of the invitation row only.
func (r *InvitationRepository) UpdateFields(ctx context.Context, id string, data map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.Invitation{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("InvitationRepository.UpdateFields: DB error", zap.String("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the user's invitation with its guests and child lists.
// A user without an invitation is not an error.
func (r *InvitationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Invitation{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		for _, child := range []interface{}{&models.Guest{}, &models.LoveStoryMilestone{}, &models.BankAccount{}} {
			if err := tx.Where("invitation_id IN ?", ids).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", ids).Delete(&models.Invitation{}).Error
	})
}

// CountAll returns the number of invitations.
func (r *InvitationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Invitation{}).Count(&count).Error
	return count, err
}

var _ IInvitationRepository = (*InvitationRepository)(nil)
