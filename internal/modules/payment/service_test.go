package payment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotelease/internal/domain"
	"hotelease/internal/stripe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockProcessor) CreateIntent(ctx context.Context, req stripe.IntentRequest) (*stripe.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Intent), args.Error(1)
}

func (m *mockProcessor) RetrieveIntent(ctx context.Context, id string) (*stripe.Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Intent), args.Error(1)
}

func (m *mockProcessor) VerifyWebhook(payload []byte, sigHeader string) (*stripe.WebhookEvent, error) {
	args := m.Called(payload, sigHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.WebhookEvent), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	return m.Called(ctx, id, intentID).Error(0)
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkPaidByIntent(ctx context.Context, intentID string) (bool, error) {
	args := m.Called(ctx, intentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkPaymentPending(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) MarkPaymentPendingByIntent(ctx context.Context, intentID string) error {
	return m.Called(ctx, intentID).Error(0)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyPaymentSucceeded(ctx context.Context, userID, bookingID int64, amount float64) error {
	return m.Called(ctx, userID, bookingID, amount).Error(0)
}

func newTestService() (*Service, *mockProcessor, *mockBookingRepo, *mockLedger, *mockNotifier) {
	proc := new(mockProcessor)
	bookings := new(mockBookingRepo)
	ledger := new(mockLedger)
	notifier := new(mockNotifier)
	return NewService(proc, bookings, ledger, notifier), proc, bookings, ledger, notifier
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:               5,
		BookingReference: "BK12345678",
		UserID:           9,
		TotalPrice:       2300,
		Currency:         "ZAR",
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
	}
}

func TestCreateIntent_Success(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil)
	proc.On("Configured").Return(true)
	proc.On("CreateIntent", mock.Anything, mock.MatchedBy(func(req stripe.IntentRequest) bool {
		return req.Amount == 230000 && req.Currency == "ZAR"
	})).Return(&stripe.Intent{ID: "pi_123", ClientSecret: "pi_123_secret", Status: "requires_payment_method"}, nil)
	bookings.On("SetPaymentIntent", mock.Anything, int64(5), "pi_123").Return(nil)

	result, err := svc.CreateIntent(context.Background(), 9, "u@example.com", 5)

	require.NoError(t, err)
	assert.Equal(t, "pi_123", result.PaymentIntentID)
	assert.Equal(t, "pi_123_secret", result.ClientSecret)
	bookings.AssertExpectations(t)
}

func TestCreateIntent_AlreadyPaid(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	b := pendingBooking()
	b.PaymentStatus = domain.PaymentPaid
	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(b, nil)

	_, err := svc.CreateIntent(context.Background(), 9, "u@example.com", 5)

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	proc.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestCreateIntent_CancelledBooking(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	b := pendingBooking()
	b.Status = domain.BookingCancelled
	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(b, nil)

	_, err := svc.CreateIntent(context.Background(), 9, "u@example.com", 5)

	assert.ErrorIs(t, err, ErrNotPayable)
	proc.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestCreateIntent_Unconfigured(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil)
	proc.On("Configured").Return(false)

	_, err := svc.CreateIntent(context.Background(), 9, "u@example.com", 5)

	assert.ErrorIs(t, err, ErrUnconfigured)
}

func TestCreateIntent_NotOwner(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateIntent(context.Background(), 2, "x@example.com", 5)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateIntent_PersistFailureIsNonFatal(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil)
	proc.On("Configured").Return(true)
	proc.On("CreateIntent", mock.Anything, mock.Anything).
		Return(&stripe.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil)
	bookings.On("SetPaymentIntent", mock.Anything, int64(5), "pi_123").Return(assert.AnError)

	result, err := svc.CreateIntent(context.Background(), 9, "u@example.com", 5)

	require.NoError(t, err)
	assert.Equal(t, "pi_123", result.PaymentIntentID)
}

func TestConfirmPayment_Succeeded(t *testing.T) {
	svc, proc, bookings, ledger, notifier := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil)
	proc.On("Configured").Return(true)
	proc.On("RetrieveIntent", mock.Anything, "pi_123").Return(&stripe.Intent{ID: "pi_123", Status: "succeeded"}, nil)
	bookings.On("MarkPaid", mock.Anything, int64(5)).Return(true, nil)
	ledger.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == 5 && p.Amount == 2300 && p.TransactionID == "pi_123" && p.Status == domain.LedgerCompleted
	})).Return(nil)
	notifier.On("NotifyPaymentSucceeded", mock.Anything, int64(9), int64(5), 2300.0).Return(nil)

	result, err := svc.ConfirmPayment(context.Background(), 9, 5, "pi_123")

	require.NoError(t, err)
	assert.True(t, result.Paid)
	ledger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPayment_LosingRacerSkipsLedger(t *testing.T) {
	svc, proc, bookings, ledger, notifier := newTestService()

	settled := pendingBooking()
	settled.Status = domain.BookingConfirmed
	settled.PaymentStatus = domain.PaymentPaid

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil).Once()
	proc.On("Configured").Return(true)
	proc.On("RetrieveIntent", mock.Anything, "pi_123").Return(&stripe.Intent{ID: "pi_123", Status: "succeeded"}, nil)
	bookings.On("MarkPaid", mock.Anything, int64(5)).Return(false, nil)
	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(settled, nil)

	result, err := svc.ConfirmPayment(context.Background(), 9, 5, "pi_123")

	require.NoError(t, err)
	assert.True(t, result.Paid)
	ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPaymentSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_CancelledBooking(t *testing.T) {
	svc, proc, bookings, ledger, _ := newTestService()

	b := pendingBooking()
	b.Status = domain.BookingCancelled
	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(b, nil)

	_, err := svc.ConfirmPayment(context.Background(), 9, 5, "pi_123")

	assert.ErrorIs(t, err, ErrNotPayable)
	proc.AssertNotCalled(t, "RetrieveIntent", mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestConfirmPayment_CancelRaceDoesNotResurrect(t *testing.T) {
	svc, proc, bookings, ledger, notifier := newTestService()

	cancelled := pendingBooking()
	cancelled.Status = domain.BookingCancelled

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil).Once()
	proc.On("Configured").Return(true)
	proc.On("RetrieveIntent", mock.Anything, "pi_123").Return(&stripe.Intent{ID: "pi_123", Status: "succeeded"}, nil)
	bookings.On("MarkPaid", mock.Anything, int64(5)).Return(false, nil)
	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(cancelled, nil)

	_, err := svc.ConfirmPayment(context.Background(), 9, 5, "pi_123")

	assert.ErrorIs(t, err, ErrNotPayable)
	ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPaymentSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_NotComplete(t *testing.T) {
	svc, proc, bookings, ledger, _ := newTestService()

	bookings.On("GetByIDForUser", mock.Anything, int64(5), int64(9)).Return(pendingBooking(), nil)
	proc.On("Configured").Return(true)
	proc.On("RetrieveIntent", mock.Anything, "pi_123").
		Return(&stripe.Intent{ID: "pi_123", Status: "requires_payment_method"}, nil)
	bookings.On("MarkPaymentPending", mock.Anything, int64(5)).Return(nil)

	result, err := svc.ConfirmPayment(context.Background(), 9, 5, "pi_123")

	require.NoError(t, err)
	assert.False(t, result.Paid)
	assert.Equal(t, "requires_payment_method", result.Status)
	ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestWebhook_Succeeded(t *testing.T) {
	svc, proc, bookings, ledger, notifier := newTestService()

	event := &stripe.WebhookEvent{ID: "evt_1", Type: "payment_intent.succeeded"}
	event.Data.Object.ID = "pi_123"
	event.Data.Object.Status = "succeeded"

	proc.On("VerifyWebhook", mock.Anything, "sig").Return(event, nil)
	bookings.On("MarkPaidByIntent", mock.Anything, "pi_123").Return(true, nil)
	bookings.On("GetByPaymentIntentID", mock.Anything, "pi_123").Return(pendingBooking(), nil)
	ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyPaymentSucceeded", mock.Anything, int64(9), int64(5), 2300.0).Return(nil)

	err := svc.Webhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	ledger.AssertExpectations(t)
}

func TestWebhook_BadSignature(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	proc.On("VerifyWebhook", mock.Anything, "bad").Return(nil, stripe.ErrBadSignature)

	err := svc.Webhook(context.Background(), []byte(`{}`), "bad")

	assert.ErrorIs(t, err, ErrBadSignature)
	bookings.AssertNotCalled(t, "MarkPaidByIntent", mock.Anything, mock.Anything)
}

func TestWebhook_FailedEvent(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	event := &stripe.WebhookEvent{ID: "evt_2", Type: "payment_intent.payment_failed"}
	event.Data.Object.ID = "pi_123"

	proc.On("VerifyWebhook", mock.Anything, "sig").Return(event, nil)
	bookings.On("MarkPaymentPendingByIntent", mock.Anything, "pi_123").Return(nil)

	err := svc.Webhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestWebhook_UnknownEventIgnored(t *testing.T) {
	svc, proc, bookings, _, _ := newTestService()

	event := &stripe.WebhookEvent{ID: "evt_3", Type: "charge.updated"}
	proc.On("VerifyWebhook", mock.Anything, "sig").Return(event, nil)

	err := svc.Webhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	bookings.AssertNotCalled(t, "MarkPaidByIntent", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "MarkPaymentPendingByIntent", mock.Anything, mock.Anything)
}

func TestWebhook_VerifiesRealSignature(t *testing.T) {
	client := stripe.New(stripe.Config{SecretKey: "sk_test_x", WebhookSecret: "whsec_test"})
	svc := NewService(client, new(mockBookingRepo), new(mockLedger), new(mockNotifier))

	payload, err := json.Marshal(map[string]any{"id": "evt_9", "type": "charge.updated"})
	require.NoError(t, err)

	header := stripe.SignPayload("whsec_test", time.Now(), payload)

	require.NoError(t, svc.Webhook(context.Background(), payload, header))
	assert.ErrorIs(t, svc.Webhook(context.Background(), payload, "t=1,v1=deadbeef"), ErrBadSignature)
}
