package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hotelease/internal/domain"
)

var ErrNotFound = errors.New("notification not found")

type Service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Create persists a notification and pushes it to the owner's live
// connection when one is open. Callers treat failures as advisory: a
// notification must never fail its parent operation.
func (s *Service) Create(ctx context.Context, userID int64, title, message string, typ domain.NotificationType) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("level=error msg=failed to create notification user_id=%d title=%q err=%v", userID, title, err)
		return nil, err
	}

	if s.hub != nil {
		s.hub.Push(userID, n)
	}
	return n, nil
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, reference string, total float64) error {
	_, err := s.Create(ctx, userID,
		"Booking Created",
		fmt.Sprintf("Your booking %s has been created successfully. Total: R%.2f", reference, total),
		domain.NotifSuccess,
	)
	return err
}

func (s *Service) NotifyPaymentSucceeded(ctx context.Context, userID, bookingID int64, amount float64) error {
	_, err := s.Create(ctx, userID,
		"Payment Successful",
		fmt.Sprintf("Your payment of R%.2f has been processed successfully. Your booking is confirmed!", amount),
		domain.NotifSuccess,
	)
	return err
}

func (s *Service) NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error {
	var message string
	typ := domain.NotifInfo
	switch status {
	case domain.BookingConfirmed:
		message = "Your booking has been confirmed!"
		typ = domain.NotifSuccess
	case domain.BookingCancelled:
		message = "Your booking has been cancelled."
	case domain.BookingCompleted:
		message = "Your booking has been completed."
	default:
		return nil
	}

	_, err := s.Create(ctx, userID, "Booking Status Updated", message, typ)
	return err
}

func (s *Service) NotifyRefundProcessed(ctx context.Context, userID, bookingID int64, amount float64, reason string) error {
	message := fmt.Sprintf("Your refund of R%.2f has been processed.", amount)
	if reason != "" {
		message += " " + reason
	}
	_, err := s.Create(ctx, userID, "Refund Processed", message, domain.NotifSuccess)
	return err
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, int64, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
