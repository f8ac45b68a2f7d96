package booking

import (
	"context"

	"hotelease/internal/domain"
)

// BookingRepositoryInterface covers only the methods the booking service uses
type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, int64, error)
	Cancel(ctx context.Context, id int64, reason string, refund bool) error
}

type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// NotificationSender decouples booking transitions from notification
// delivery; failures are the sender's problem, never the caller's.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID, bookingID int64, reference string, total float64) error
}
