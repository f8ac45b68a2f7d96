package admin

import (
	"context"
	"testing"

	"hotelease/internal/database"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error {
	return m.Called(ctx, userID, bookingID, status).Error(0)
}

func (m *mockNotifier) NotifyRefundProcessed(ctx context.Context, userID, bookingID int64, amount float64, reason string) error {
	return m.Called(ctx, userID, bookingID, amount, reason).Error(0)
}

type fixture struct {
	svc      *Service
	db       *gorm.DB
	bookings *repository.BookingRepository
	payments *repository.PaymentRepository
	notifier *mockNotifier
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	notifier := new(mockNotifier)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewHotelRepository(db),
		bookings,
		payments,
		notifier,
		nil,
	)
	return &fixture{svc: svc, db: db, bookings: bookings, payments: payments, notifier: notifier}
}

func (f *fixture) seedBooking(t *testing.T, status domain.BookingStatus, payment domain.PaymentStatus, total float64) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		BookingReference: "BKTEST" + string(status)[:2],
		UserID:           7,
		HotelID:          1,
		Nights:           2,
		Rooms:            1,
		TotalPrice:       total,
		Status:           status,
		PaymentStatus:    payment,
		Currency:         "ZAR",
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func nightly(v float64) *float64 {
	return &v
}

func TestCreateHotel_GeneratesSlug(t *testing.T) {
	f := setup(t)

	hotel, err := f.svc.CreateHotel(context.Background(), CreateHotelRequest{
		Name:          "The Grand Palm & Spa",
		Location:      "Cape Town",
		PricePerNight: nightly(1800),
	})

	require.NoError(t, err)
	assert.Equal(t, "the-grand-palm-spa", hotel.Slug)
	assert.Equal(t, "ZAR", hotel.Currency)
}

func TestCreateHotel_ZeroRateAllowed(t *testing.T) {
	f := setup(t)

	hotel, err := f.svc.CreateHotel(context.Background(), CreateHotelRequest{
		Name:          "Community Shelter",
		Location:      "Springbok",
		PricePerNight: nightly(0),
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, hotel.PricePerNight)
}

func TestUpdateHotel_PatchesOnlyProvidedFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	hotel, err := f.svc.CreateHotel(ctx, CreateHotelRequest{
		Name: "Old Name", Location: "Durban", PricePerNight: nightly(500),
	})
	require.NoError(t, err)

	price := 750.0
	updated, err := f.svc.UpdateHotel(ctx, hotel.ID, UpdateHotelRequest{PricePerNight: &price})

	require.NoError(t, err)
	assert.Equal(t, "Old Name", updated.Name)
	assert.Equal(t, 750.0, updated.PricePerNight)
}

func TestUpdateHotel_Missing(t *testing.T) {
	f := setup(t)

	_, err := f.svc.UpdateHotel(context.Background(), 999, UpdateHotelRequest{})
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestDeleteHotel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	hotel, err := f.svc.CreateHotel(ctx, CreateHotelRequest{Name: "Doomed", Location: "PE", PricePerNight: nightly(100)})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteHotel(ctx, hotel.ID))
	assert.ErrorIs(t, f.svc.DeleteHotel(ctx, hotel.ID), ErrHotelNotFound)
}

func TestDashboard_Counts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateHotel(ctx, CreateHotelRequest{Name: "H1", Location: "JHB", PricePerNight: nightly(100)})
	require.NoError(t, err)
	f.seedBooking(t, domain.BookingPending, domain.PaymentPending, 1000)
	f.seedBooking(t, domain.BookingConfirmed, domain.PaymentPaid, 2300)

	stats, err := f.svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHotels)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.PendingBookings)
	assert.Equal(t, int64(1), stats.ConfirmedBookings)
	assert.Equal(t, 2300.0, stats.TotalRevenue)
}

func TestUpdateBookingStatus_OverrideAndNotify(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b := f.seedBooking(t, domain.BookingPending, domain.PaymentPending, 1000)
	f.notifier.On("NotifyBookingStatus", mock.Anything, int64(7), b.ID, domain.BookingCompleted).Return(nil)

	// pending -> completed is not a user-facing transition; the admin
	// override applies it anyway
	updated, err := f.svc.UpdateBookingStatus(ctx, b.ID, domain.BookingCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, updated.Status)
	f.notifier.AssertExpectations(t)
}

func TestUpdateBookingStatus_InvalidStatus(t *testing.T) {
	f := setup(t)

	_, err := f.svc.UpdateBookingStatus(context.Background(), 1, domain.BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateBookingStatus_Missing(t *testing.T) {
	f := setup(t)

	_, err := f.svc.UpdateBookingStatus(context.Background(), 999, domain.BookingConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestProcessRefund_DefaultsToTotalAndWritesLedger(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b := f.seedBooking(t, domain.BookingConfirmed, domain.PaymentPaid, 2300)
	f.notifier.On("NotifyRefundProcessed", mock.Anything, int64(7), b.ID, 2300.0, "overbooked").Return(nil)

	updated, err := f.svc.ProcessRefund(ctx, b.ID, RefundRequest{Reason: "overbooked"})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, updated.PaymentStatus)

	entries, err := f.payments.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -2300.0, entries[0].Amount)
	assert.Equal(t, "refund", entries[0].Method)
	assert.Contains(t, entries[0].TransactionID, "REFUND-")
	f.notifier.AssertExpectations(t)
}

func TestProcessRefund_ExplicitAmount(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b := f.seedBooking(t, domain.BookingConfirmed, domain.PaymentPaid, 2300)
	f.notifier.On("NotifyRefundProcessed", mock.Anything, int64(7), b.ID, 500.0, "").Return(nil)

	amount := 500.0
	_, err := f.svc.ProcessRefund(ctx, b.ID, RefundRequest{Amount: &amount})

	require.NoError(t, err)

	entries, err := f.payments.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -500.0, entries[0].Amount)
}

func TestListBookings_RejectsUnknownStatus(t *testing.T) {
	f := setup(t)

	_, _, err := f.svc.ListBookings(context.Background(), repository.BookingFilter{Status: "bogus"}, 20, 0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
