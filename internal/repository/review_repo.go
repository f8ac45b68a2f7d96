package repository

import (
	"context"
	"time"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and refreshes the hotel's aggregate rating
// in one transaction, so the rating never drifts from the review rows.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}
		return recomputeHotelRating(tx, rv.HotelID)
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	tx := r.db.WithContext(ctx).First(&rv, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("hotel_id = ?", hotelID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	tx := r.db.WithContext(ctx).
		Preload("User").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id, hotelID int64, rating int, comment string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Review{}).Where("id = ?", id).Updates(map[string]any{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return recomputeHotelRating(tx, hotelID)
	})
}

func (r *ReviewRepository) Delete(ctx context.Context, id, hotelID int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Review{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		return recomputeHotelRating(tx, hotelID)
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// recomputeHotelRating sets the hotel's rating to the mean of its
// remaining reviews, or zero when none remain. Runs inside the same
// transaction as the review mutation that made it necessary.
func recomputeHotelRating(tx *gorm.DB, hotelID int64) error {
	var avg float64
	if err := tx.Model(&domain.Review{}).
		Where("hotel_id = ?", hotelID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Hotel{}).Where("id = ?", hotelID).Updates(map[string]any{
		"rating":     avg,
		"updated_at": time.Now(),
	}).Error
}
