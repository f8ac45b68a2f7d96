package payment

import (
	"context"

	"hotelease/internal/domain"
	"hotelease/internal/stripe"
)

// Processor abstracts the external payment gateway so the lifecycle can
// be exercised against a fake in tests.
type Processor interface {
	Configured() bool
	CreateIntent(ctx context.Context, req stripe.IntentRequest) (*stripe.Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*stripe.Intent, error)
	VerifyWebhook(payload []byte, sigHeader string) (*stripe.WebhookEvent, error)
}

// BookingRepositoryInterface is the payment-track slice of the booking
// repository. MarkPaid and MarkPaidByIntent are conditional updates:
// they report whether this caller performed the pending→paid flip.
type BookingRepositoryInterface interface {
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	MarkPaid(ctx context.Context, id int64) (bool, error)
	MarkPaidByIntent(ctx context.Context, intentID string) (bool, error)
	MarkPaymentPending(ctx context.Context, id int64) error
	MarkPaymentPendingByIntent(ctx context.Context, intentID string) error
}

type LedgerRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Payment) error
}

type NotificationSender interface {
	NotifyPaymentSucceeded(ctx context.Context, userID, bookingID int64, amount float64) error
}
