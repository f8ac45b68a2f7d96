package admin

import (
	"errors"
	"net/http"
	"strconv"

	"hotelease/internal/domain"
	"hotelease/internal/pkg/response"
	"hotelease/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface; the group must already carry
// the auth and admin-role middleware.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/dashboard", h.Dashboard)
	adminGroup.GET("/users", h.ListUsers)
	adminGroup.GET("/hotels", h.ListHotels)
	adminGroup.POST("/hotels", h.CreateHotel)
	adminGroup.PUT("/hotels/:id", h.UpdateHotel)
	adminGroup.DELETE("/hotels/:id", h.DeleteHotel)
	adminGroup.GET("/bookings", h.ListBookings)
	adminGroup.PUT("/bookings/:id/status", h.UpdateBookingStatus)
	adminGroup.POST("/refunds/:id", h.ProcessRefund)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	users, total, err := h.service.ListUsers(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": paginationBody(page, limit, total),
	})
}

func (h *Handler) ListHotels(c *gin.Context) {
	page, limit := pageParams(c)

	hotels, total, err := h.service.ListHotels(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load hotels")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"hotels":     hotels,
		"pagination": paginationBody(page, limit, total),
	})
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, location and a non-negative nightly price are required")
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to create hotel")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to update hotel")
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{"hotel": hotel}, "Hotel updated successfully")
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to delete hotel")
		return
	}

	response.SuccessMessage(c, http.StatusOK, nil, "Hotel deleted successfully")
}

func (h *Handler) ListBookings(c *gin.Context) {
	page, limit := pageParams(c)

	f := repository.BookingFilter{Status: c.Query("status")}
	f.HotelID, _ = strconv.ParseInt(c.DefaultQuery("hotelId", "0"), 10, 64)
	f.UserID, _ = strconv.ParseInt(c.DefaultQuery("userId", "0"), 10, 64)

	bookings, total, err := h.service.ListBookings(c.Request.Context(), f, limit, (page-1)*limit)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": paginationBody(page, limit, total),
	})
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be pending, confirmed, cancelled or completed")
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to update booking status")
		}
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{"booking": b}, "Booking status updated")
}

func (h *Handler) ProcessRefund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req RefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	b, err := h.service.ProcessRefund(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to process refund")
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{"booking": b}, "Refund processed successfully")
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationBody(page, limit int, total int64) gin.H {
	return gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": (total + int64(limit) - 1) / int64(limit),
	}
}
