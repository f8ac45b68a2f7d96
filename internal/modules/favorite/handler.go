package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"hotelease/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/favorites", h.List)
		users.POST("/favorites/:hotelId", h.Add)
		users.DELETE("/favorites/:hotelId", h.Remove)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	favorites, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load favorites")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")
	hotelID, err := strconv.ParseInt(c.Param("hotelId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	f, err := h.service.Add(c.Request.Context(), userID, hotelID)
	if err != nil {
		switch {
		case errors.Is(err, ErrHotelNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
		case errors.Is(err, ErrDuplicate):
			response.Error(c, http.StatusConflict, "CONFLICT", "Hotel is already in favorites")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to add favorite")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"favorite": f})
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")
	hotelID, err := strconv.ParseInt(c.Param("hotelId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, hotelID); err != nil {
		if errors.Is(err, ErrNotFavorite) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel is not in favorites")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to remove favorite")
		return
	}

	response.SuccessMessage(c, http.StatusOK, nil, "Removed from favorites")
}
