package catalog

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	hotels := api.Group("/hotels")
	{
		hotels.GET("", h.List)
		hotels.GET("/:id", h.Get)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	f := repository.HotelFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
	}
	f.MinPrice, _ = strconv.ParseFloat(c.DefaultQuery("minPrice", "0"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.DefaultQuery("maxPrice", "0"), 64)
	f.MinRating, _ = strconv.ParseFloat(c.DefaultQuery("minRating", "0"), 64)

	result, err := h.service.List(c.Request.Context(), f, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load hotels")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"hotels": result.Hotels,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": result.Total,
			"pages": (result.Total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	hotel, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load hotel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}
