package repository

import (
	"context"
	"time"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	BookingReference   string     `gorm:"column:booking_reference"`
	UserID             int64      `gorm:"column:user_id"`
	HotelID            int64      `gorm:"column:hotel_id"`
	CheckInDate        time.Time  `gorm:"column:check_in_date"`
	CheckOutDate       time.Time  `gorm:"column:check_out_date"`
	Nights             int        `gorm:"column:nights"`
	Adults             int        `gorm:"column:adults"`
	Children           int        `gorm:"column:children"`
	Rooms              int        `gorm:"column:rooms"`
	BasePrice          float64    `gorm:"column:base_price"`
	Taxes              float64    `gorm:"column:taxes"`
	Fees               float64    `gorm:"column:fees"`
	Discounts          float64    `gorm:"column:discounts"`
	TotalPrice         float64    `gorm:"column:total_price"`
	Status             string     `gorm:"column:status"`
	PaymentStatus      string     `gorm:"column:payment_status"`
	Currency           string     `gorm:"column:currency"`
	PaymentIntentID    *string    `gorm:"column:payment_intent_id"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		BookingReference:   m.BookingReference,
		UserID:             m.UserID,
		HotelID:            m.HotelID,
		CheckInDate:        m.CheckInDate,
		CheckOutDate:       m.CheckOutDate,
		Nights:             m.Nights,
		Adults:             m.Adults,
		Children:           m.Children,
		Rooms:              m.Rooms,
		BasePrice:          m.BasePrice,
		Taxes:              m.Taxes,
		Fees:               m.Fees,
		Discounts:          m.Discounts,
		TotalPrice:         m.TotalPrice,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		Currency:           m.Currency,
		PaymentIntentID:    m.PaymentIntentID,
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		BookingReference:   b.BookingReference,
		UserID:             b.UserID,
		HotelID:            b.HotelID,
		CheckInDate:        b.CheckInDate,
		CheckOutDate:       b.CheckOutDate,
		Nights:             b.Nights,
		Adults:             b.Adults,
		Children:           b.Children,
		Rooms:              b.Rooms,
		BasePrice:          b.BasePrice,
		Taxes:              b.Taxes,
		Fees:               b.Fees,
		Discounts:          b.Discounts,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Currency:           b.Currency,
		PaymentIntentID:    b.PaymentIntentID,
		CancellationReason: reason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// GetByIDForUser scopes the lookup to the owner; a booking belonging to
// someone else reads as not found.
func (r *BookingRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UserBookingRow is a booking joined with the hotel fields the list
// endpoints return.
type UserBookingRow struct {
	bookingModel
	HotelName     string `gorm:"column:hotel_name"`
	HotelLocation string `gorm:"column:hotel_location"`
	HotelAddress  string `gorm:"column:hotel_address"`
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("bookings.user_id = ?", userID)
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []UserBookingRow
	tx := q.
		Select("bookings.*, hotels.name AS hotel_name, hotels.location AS hotel_location, hotels.address AS hotel_address").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Order("bookings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		b := toDomainBooking(row.bookingModel)
		b.Hotel = &domain.Hotel{
			ID:       row.HotelID,
			Name:     row.HotelName,
			Location: row.HotelLocation,
			Address:  row.HotelAddress,
		}
		out = append(out, *b)
	}
	return out, total, nil
}

// BookingFilter narrows the admin booking listing.
type BookingFilter struct {
	Status  string
	HotelID int64
	UserID  int64
}

func (r *BookingRepository) ListAll(ctx context.Context, f BookingFilter, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.HotelID > 0 {
		q = q.Where("bookings.hotel_id = ?", f.HotelID)
	}
	if f.UserID > 0 {
		q = q.Where("bookings.user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []UserBookingRow
	tx := q.
		Select("bookings.*, hotels.name AS hotel_name, hotels.location AS hotel_location, hotels.address AS hotel_address").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Order("bookings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		b := toDomainBooking(row.bookingModel)
		b.Hotel = &domain.Hotel{
			ID:       row.HotelID,
			Name:     row.HotelName,
			Location: row.HotelLocation,
			Address:  row.HotelAddress,
		}
		out = append(out, *b)
	}
	return out, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}).Error
}

// Cancel marks the booking cancelled and, when the payment had already
// settled, flips the payment track to refunded in the same statement.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, refund bool) error {
	now := time.Now()
	updates := map[string]any{
		"status":       string(domain.BookingCancelled),
		"cancelled_at": now,
		"updated_at":   now,
	}
	if reason != "" {
		updates["cancellation_reason"] = reason
	}
	if refund {
		updates["payment_status"] = string(domain.PaymentRefunded)
	}
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates).Error
}

// SetPaymentIntent records the processor's intent reference. Best-effort
// at call sites: a failure here must not fail intent creation.
func (r *BookingRepository) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"payment_intent_id": intentID,
		"updated_at":        time.Now(),
	}).Error
}

// MarkPaid transitions the booking to (confirmed, paid) only if it is
// still pending on both tracks. The conditional update is the ordering
// guarantee between racing confirmations, webhooks and cancellations:
// exactly one caller observes changed=true and owns the ledger entry, and
// a booking cancelled or completed in the meantime is never resurrected.
func (r *BookingRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ? AND payment_status <> ?",
			id, string(domain.BookingPending), string(domain.PaymentPaid)).
		Updates(map[string]any{
			"payment_status": string(domain.PaymentPaid),
			"status":         string(domain.BookingConfirmed),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkPaidByIntent is the webhook variant of MarkPaid, keyed on the
// processor's intent id.
func (r *BookingRepository) MarkPaidByIntent(ctx context.Context, intentID string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("payment_intent_id = ? AND status = ? AND payment_status <> ?",
			intentID, string(domain.BookingPending), string(domain.PaymentPaid)).
		Updates(map[string]any{
			"payment_status": string(domain.PaymentPaid),
			"status":         string(domain.BookingConfirmed),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkPaymentPending records explicit non-progress after a failed or
// incomplete confirmation attempt. Paid and terminal bookings are left
// untouched.
func (r *BookingRepository) MarkPaymentPending(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ? AND payment_status <> ?",
			id, string(domain.BookingPending), string(domain.PaymentPaid)).
		Updates(map[string]any{
			"payment_status": string(domain.PaymentPending),
			"updated_at":     time.Now(),
		}).Error
}

func (r *BookingRepository) MarkPaymentPendingByIntent(ctx context.Context, intentID string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("payment_intent_id = ? AND status = ? AND payment_status <> ?",
			intentID, string(domain.BookingPending), string(domain.PaymentPaid)).
		Updates(map[string]any{
			"payment_status": string(domain.PaymentPending),
			"updated_at":     time.Now(),
		}).Error
}

func (r *BookingRepository) MarkRefunded(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"payment_status": string(domain.PaymentRefunded),
		"updated_at":     time.Now(),
	}).Error
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ?", string(status)).
		Count(&cnt)
	return cnt, tx.Error
}

// PaidRevenue sums total_price over bookings whose payment settled.
func (r *BookingRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue)
	return revenue, tx.Error
}
