package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ErrInvalidTransition is returned when a booking status change is not in
// the legal-transition table.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// bookingTransitions is the single legal-transition table. Cancelled and
// completed are terminal: nothing transitions out of them.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether moving a booking from current to next is
// legal. Every user-facing status mutation goes through this; the admin
// override is the one deliberate exception.
func CanTransition(current, next BookingStatus) error {
	for _, allowed := range bookingTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return ErrInvalidTransition
}

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID                 int64         `json:"id"`
	BookingReference   string        `json:"booking_reference" gorm:"uniqueIndex"`
	UserID             int64         `json:"user_id" validate:"required"`
	HotelID            int64         `json:"hotel_id" validate:"required"`
	CheckInDate        time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate       time.Time     `json:"check_out_date" validate:"required"`
	Nights             int           `json:"nights"`
	Adults             int           `json:"adults"`
	Children           int           `json:"children"`
	Rooms              int           `json:"rooms"`
	BasePrice          float64       `json:"base_price"`
	Taxes              float64       `json:"taxes"`
	Fees               float64       `json:"fees"`
	Discounts          float64       `json:"discounts"`
	TotalPrice         float64       `json:"total_price" validate:"gte=0"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	Currency           string        `json:"currency"`
	PaymentIntentID    *string       `json:"payment_intent_id,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
