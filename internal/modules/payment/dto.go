package payment

type CreateIntentRequest struct {
	BookingID int64 `json:"bookingId" binding:"required"`
}

type ConfirmPaymentRequest struct {
	BookingID       int64  `json:"bookingId" binding:"required"`
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}
