package repository

import (
	"context"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, hotelID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Delete(&domain.Favorite{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	tx := r.db.WithContext(ctx).
		Preload("Hotel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}
