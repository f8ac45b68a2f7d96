package repository

import (
	"context"
	"time"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// HotelFilter narrows the public catalog listing.
type HotelFilter struct {
	Query     string
	Location  string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	tx := r.db.WithContext(ctx).First(&h, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &h, nil
}

func (r *HotelRepository) List(ctx context.Context, f HotelFilter, limit, offset int) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{})
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []domain.Hotel
	tx := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&hotels)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return hotels, total, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	h.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *HotelRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&domain.Hotel{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *HotelRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Hotel{}).Count(&cnt)
	return cnt, tx.Error
}
