package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"hotelease/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// taxRate is the flat tax applied on top of the base price.
const taxRate = 0.15

type Service struct {
	bookings      BookingRepositoryInterface
	hotels        HotelReader
	notifications NotificationSender
	currency      string
}

func NewService(bookings BookingRepositoryInterface, hotels HotelReader, notifications NotificationSender, currency string) *Service {
	if currency == "" {
		currency = "ZAR"
	}
	return &Service{
		bookings:      bookings,
		hotels:        hotels,
		notifications: notifications,
		currency:      currency,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, ErrInvalidDates
	}

	hotel, err := s.hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	adults := req.Adults
	if adults < 1 {
		adults = 1
	}
	rooms := req.Rooms
	if rooms < 1 {
		rooms = 1
	}

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	basePrice := round2(hotel.PricePerNight * float64(nights) * float64(rooms))
	taxes := round2(basePrice * taxRate)
	total := round2(basePrice + taxes)

	currency := hotel.Currency
	if currency == "" {
		currency = s.currency
	}

	b := &domain.Booking{
		BookingReference: newReference(),
		UserID:           userID,
		HotelID:          hotel.ID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Nights:           nights,
		Adults:           adults,
		Children:         req.Children,
		Rooms:            rooms,
		BasePrice:        basePrice,
		Taxes:            taxes,
		TotalPrice:       total,
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
		Currency:         currency,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.notifications.NotifyBookingCreated(ctx, userID, b.ID, b.BookingReference, b.TotalPrice); err != nil {
		log.Printf("level=error msg=booking created notification failed booking_id=%d err=%v", b.ID, err)
	}

	b.Hotel = hotel
	return b, nil
}

func (s *Service) ListMy(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, int64, error) {
	if status != "" && !domain.ValidBookingStatus(domain.BookingStatus(status)) {
		return nil, 0, ErrInvalidStatusFilter
	}
	return s.bookings.ListByUser(ctx, userID, status, limit, offset)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Cancel moves an owner's booking to cancelled. A booking paid before
// cancellation has its payment status flipped to refunded; the actual
// refund against the processor is an operator step.
func (s *Service) Cancel(ctx context.Context, userID, id int64, reason string) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingCancelled:
		return nil, ErrAlreadyCancelled
	case domain.BookingCompleted:
		return nil, ErrAlreadyCompleted
	}
	if err := domain.CanTransition(b.Status, domain.BookingCancelled); err != nil {
		return nil, ErrAlreadyCompleted
	}

	refund := b.PaymentStatus == domain.PaymentPaid
	if err := s.bookings.Cancel(ctx, b.ID, reason, refund); err != nil {
		return nil, err
	}

	now := time.Now()
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	if refund {
		b.PaymentStatus = domain.PaymentRefunded
	}
	return b, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// newReference builds the customer-facing booking code, e.g. BK3F2A9C1D.
func newReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "BK" + raw[:8]
}
