package payment

import (
	"errors"
	"io"
	"net/http"

	"hotelease/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps the raw payload read for signature verification.
const maxWebhookBody = 1 << 16

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("/payment-intent", h.CreateIntent)
		bookings.POST("/confirm-payment", h.ConfirmPayment)
	}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) CreateIntent(c *gin.Context) {
	userID := c.GetInt64("user_id")
	email := c.GetString("email")

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.CreateIntent(c.Request.Context(), userID, email, req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusBadRequest, "CONFLICT", "Booking is already paid")
		case errors.Is(err, ErrNotPayable):
			response.Error(c, http.StatusBadRequest, "CONFLICT", "Booking can no longer be paid")
		case errors.Is(err, ErrUnconfigured):
			response.Error(c, http.StatusInternalServerError, "SERVICE_UNAVAILABLE", "Payment processing is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to create payment intent")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.ConfirmPayment(c.Request.Context(), userID, req.BookingID, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotPayable):
			response.Error(c, http.StatusBadRequest, "CONFLICT", "Booking can no longer be paid")
		case errors.Is(err, ErrUnconfigured):
			response.Error(c, http.StatusInternalServerError, "SERVICE_UNAVAILABLE", "Payment processing is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to confirm payment")
		}
		return
	}

	if !result.Paid {
		response.Error(c, http.StatusBadRequest, "PAYMENT_NOT_COMPLETE", "Payment has not completed: "+result.Status)
		return
	}

	response.SuccessMessage(c, http.StatusOK, result, "Payment confirmed successfully")
}

// Webhook consumes the raw body so the signature covers exactly the
// bytes the processor signed.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to read request body")
		return
	}

	if err := h.service.Webhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
