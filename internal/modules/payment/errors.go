package payment

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyPaid     = errors.New("booking already paid")
	ErrNotPayable      = errors.New("booking is in a terminal state")
	ErrUnconfigured    = errors.New("payment processor not configured")
	ErrBadSignature    = errors.New("webhook signature verification failed")
)
