package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"hotelease/internal/domain"
	"hotelease/internal/stripe"

	"gorm.io/gorm"
)

const intentStatusSucceeded = "succeeded"

type Service struct {
	processor     Processor
	bookings      BookingRepositoryInterface
	ledger        LedgerRepositoryInterface
	notifications NotificationSender
}

func NewService(processor Processor, bookings BookingRepositoryInterface, ledger LedgerRepositoryInterface, notifications NotificationSender) *Service {
	return &Service{
		processor:     processor,
		bookings:      bookings,
		ledger:        ledger,
		notifications: notifications,
	}
}

type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmResult reports the outcome of a confirmation attempt. Paid=false
// with a processor status is a normal non-progress response, not an error.
type ConfirmResult struct {
	Paid   bool   `json:"paid"`
	Status string `json:"status"`
}

func (s *Service) CreateIntent(ctx context.Context, userID int64, email string, bookingID int64) (*IntentResult, error) {
	b, err := s.bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
		return nil, ErrNotPayable
	}
	if !s.processor.Configured() {
		return nil, ErrUnconfigured
	}

	intent, err := s.processor.CreateIntent(ctx, stripe.IntentRequest{
		Amount:       minorUnits(b.TotalPrice),
		Currency:     b.Currency,
		Description:  fmt.Sprintf("Booking %s", b.BookingReference),
		ReceiptEmail: email,
		Metadata: map[string]string{
			"booking_id":        fmt.Sprintf("%d", b.ID),
			"booking_reference": b.BookingReference,
		},
	})
	if err != nil {
		if errors.Is(err, stripe.ErrNotConfigured) {
			return nil, ErrUnconfigured
		}
		return nil, err
	}

	// best-effort: a lost intent reference only degrades webhook matching
	if err := s.bookings.SetPaymentIntent(ctx, b.ID, intent.ID); err != nil {
		log.Printf("level=error msg=persist payment intent failed booking_id=%d intent_id=%s err=%v", b.ID, intent.ID, err)
	}

	return &IntentResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, userID, bookingID int64, intentID string) (*ConfirmResult, error) {
	b, err := s.bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
		return nil, ErrNotPayable
	}
	if !s.processor.Configured() {
		return nil, ErrUnconfigured
	}

	intent, err := s.processor.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if intent.Status != intentStatusSucceeded {
		if err := s.bookings.MarkPaymentPending(ctx, b.ID); err != nil {
			log.Printf("level=error msg=mark payment pending failed booking_id=%d err=%v", b.ID, err)
		}
		return &ConfirmResult{Paid: false, Status: intent.Status}, nil
	}

	won, err := s.bookings.MarkPaid(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if won {
		s.settle(ctx, b, intentID)
		return &ConfirmResult{Paid: true, Status: intent.Status}, nil
	}

	// Losing the conditional update means either an earlier confirmation
	// already settled this booking, or a cancel slipped in between the
	// read above and the update. Re-read to tell the two apart.
	fresh, err := s.bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if fresh.PaymentStatus != domain.PaymentPaid {
		return nil, ErrNotPayable
	}
	return &ConfirmResult{Paid: true, Status: intent.Status}, nil
}

// Webhook handles a processor-signed event. Signature verification runs
// on the raw body bytes before anything is parsed.
func (s *Service) Webhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.processor.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return ErrBadSignature
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intentID := event.Data.Object.ID
		won, err := s.bookings.MarkPaidByIntent(ctx, intentID)
		if err != nil {
			log.Printf("level=error msg=webhook mark paid failed intent_id=%s err=%v", intentID, err)
			return nil
		}
		if won {
			if b, err := s.bookings.GetByPaymentIntentID(ctx, intentID); err == nil {
				s.settle(ctx, b, intentID)
			}
		}
	case "payment_intent.payment_failed":
		intentID := event.Data.Object.ID
		if err := s.bookings.MarkPaymentPendingByIntent(ctx, intentID); err != nil {
			log.Printf("level=error msg=webhook mark pending failed intent_id=%s err=%v", intentID, err)
		}
	default:
		// unknown event types are acknowledged and ignored
	}
	return nil
}

// settle records the ledger entry and notifies the owner after this
// caller won the pending→paid flip. Both effects are best-effort.
func (s *Service) settle(ctx context.Context, b *domain.Booking, intentID string) {
	entry := &domain.Payment{
		BookingID:     b.ID,
		Amount:        b.TotalPrice,
		Method:        "card",
		TransactionID: intentID,
		Status:        domain.LedgerCompleted,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		log.Printf("level=error msg=ledger insert failed booking_id=%d intent_id=%s err=%v", b.ID, intentID, err)
	}
	if err := s.notifications.NotifyPaymentSucceeded(ctx, b.UserID, b.ID, b.TotalPrice); err != nil {
		log.Printf("level=error msg=payment notification failed booking_id=%d err=%v", b.ID, err)
	}
}

// minorUnits converts a major-unit amount to the processor's integer
// minor units, rounding to the nearest cent.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
