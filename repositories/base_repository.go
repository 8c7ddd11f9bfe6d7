package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

type txContextKey struct{}

// ContextWithTx attaches an open transaction so repositories built from the
// shared connection join it.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// IBaseRepository covers the lookups every table shares.
type IBaseRepository[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// BaseRepository is the generic implementation of IBaseRepository.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository creates a BaseRepository over db.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID loads one row by primary key.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var entity T
	if err := r.getDB(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// DeleteByID hard-deletes one row. Missing rows yield ErrNotFound.
func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	var entity T
	result := r.getDB(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of rows in the table.
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.getDB(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
