package admin

import (
	"context"

	"hotelease/internal/domain"
	"hotelease/internal/repository"
)

type UserStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type HotelStore interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context, f repository.HotelFilter, limit, offset int) ([]domain.Hotel, int64, error)
	Update(ctx context.Context, h *domain.Hotel) error
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListAll(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	MarkRefunded(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}

type LedgerWriter interface {
	Create(ctx context.Context, p *domain.Payment) error
}

type NotificationSender interface {
	NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error
	NotifyRefundProcessed(ctx context.Context, userID, bookingID int64, amount float64, reason string) error
}
