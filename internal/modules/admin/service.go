package admin

import (
	"context"
	"errors"
	"log"
	"strings"

	"hotelease/internal/cache"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users         UserStore
	hotels        HotelStore
	bookings      BookingStore
	ledger        LedgerWriter
	notifications NotificationSender
	cache         *cache.Cache
}

func NewService(users UserStore, hotels HotelStore, bookings BookingStore, ledger LedgerWriter, notifications NotificationSender, cache *cache.Cache) *Service {
	return &Service{
		users:         users,
		hotels:        hotels,
		bookings:      bookings,
		ledger:        ledger,
		notifications: notifications,
		cache:         cache,
	}
}

type DashboardStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalHotels       int64   `json:"totalHotels"`
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	CancelledBookings int64   `json:"cancelledBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalHotels, err = s.hotels.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = s.bookings.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingBookings, err = s.bookings.CountByStatus(ctx, domain.BookingPending); err != nil {
		return nil, err
	}
	if stats.ConfirmedBookings, err = s.bookings.CountByStatus(ctx, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	if stats.CancelledBookings, err = s.bookings.CountByStatus(ctx, domain.BookingCancelled); err != nil {
		return nil, err
	}
	if stats.CompletedBookings, err = s.bookings.CountByStatus(ctx, domain.BookingCompleted); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.bookings.PaidRevenue(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *Service) ListHotels(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error) {
	return s.hotels.List(ctx, repository.HotelFilter{}, limit, offset)
}

func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{
		Name:          req.Name,
		Slug:          slugify(req.Name),
		Location:      req.Location,
		Address:       req.Address,
		City:          req.City,
		Province:      req.Province,
		Country:       req.Country,
		Description:   req.Description,
		Currency:      req.Currency,
	}
	if req.PricePerNight != nil {
		h.PricePerNight = *req.PricePerNight
	}
	if h.Currency == "" {
		h.Currency = "ZAR"
	}

	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return h, nil
}

func (s *Service) UpdateHotel(ctx context.Context, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		h.Name = *req.Name
		h.Slug = slugify(*req.Name)
	}
	if req.Location != nil {
		h.Location = *req.Location
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.City != nil {
		h.City = *req.City
	}
	if req.Province != nil {
		h.Province = *req.Province
	}
	if req.Country != nil {
		h.Country = *req.Country
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.PricePerNight != nil {
		h.PricePerNight = *req.PricePerNight
	}
	if req.Currency != nil {
		h.Currency = *req.Currency
	}

	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return h, nil
}

func (s *Service) DeleteHotel(ctx context.Context, id int64) error {
	deleted, err := s.hotels.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrHotelNotFound
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) ListBookings(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, int64, error) {
	if f.Status != "" && !domain.ValidBookingStatus(domain.BookingStatus(f.Status)) {
		return nil, 0, ErrInvalidStatus
	}
	return s.bookings.ListAll(ctx, f, limit, offset)
}

// UpdateBookingStatus applies the target status unconditionally. The
// operator override is exempt from the user-facing transition table; the
// status itself must still be a known one.
func (s *Service) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}
	b.Status = status

	switch status {
	case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
		if err := s.notifications.NotifyBookingStatus(ctx, b.UserID, b.ID, status); err != nil {
			log.Printf("level=error msg=status notification failed booking_id=%d status=%s err=%v", b.ID, status, err)
		}
	}
	return b, nil
}

// ProcessRefund flips the payment track to refunded and records an
// auditable ledger row. The processor-side refund is an operator step
// outside this service.
func (s *Service) ProcessRefund(ctx context.Context, id int64, req RefundRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	amount := b.TotalPrice
	if req.Amount != nil && *req.Amount > 0 {
		amount = *req.Amount
	}

	if err := s.bookings.MarkRefunded(ctx, b.ID); err != nil {
		return nil, err
	}
	b.PaymentStatus = domain.PaymentRefunded

	transaction := "REFUND-" + b.BookingReference
	if b.PaymentIntentID != nil && *b.PaymentIntentID != "" {
		transaction = "REFUND-" + *b.PaymentIntentID
	}
	entry := &domain.Payment{
		BookingID:     b.ID,
		Amount:        -amount,
		Method:        "refund",
		TransactionID: transaction,
		Status:        domain.LedgerCompleted,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		log.Printf("level=error msg=refund ledger insert failed booking_id=%d err=%v", b.ID, err)
	}

	if err := s.notifications.NotifyRefundProcessed(ctx, b.UserID, b.ID, amount, req.Reason); err != nil {
		log.Printf("level=error msg=refund notification failed booking_id=%d err=%v", b.ID, err)
	}
	return b, nil
}

func slugify(name string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
