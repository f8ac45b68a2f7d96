package review

import (
	"context"

	"hotelease/internal/domain"
)

// ReviewRepositoryInterface covers the review mutations. Create, Update
// and Delete refresh the hotel's aggregate rating in the same
// transaction as the review row.
type ReviewRepositoryInterface interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, int64, error)
	Update(ctx context.Context, id, hotelID int64, rating int, comment string) error
	Delete(ctx context.Context, id, hotelID int64) (bool, error)
}

// HotelReader is the read-only hotel slice used for existence checks.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}
