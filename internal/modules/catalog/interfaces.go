package catalog

import (
	"context"

	"hotelease/internal/domain"
	"hotelease/internal/repository"
)

// HotelReader is the read-only slice of the hotel repository the public
// catalog needs.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context, f repository.HotelFilter, limit, offset int) ([]domain.Hotel, int64, error)
}
