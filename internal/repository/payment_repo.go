package repository

import (
	"context"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

func (r *PaymentRepository) CountByTransaction(ctx context.Context, transactionID string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&cnt)
	return cnt, tx.Error
}
