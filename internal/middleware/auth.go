package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotelease/internal/domain"
	jwtsvc "hotelease/internal/pkg/jwt"
	"hotelease/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserResolver loads the token subject; a token for a deleted user must
// not pass the gate.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth admits or rejects every request to a protected route. On success
// the resolved identity is attached to the request context.
func Auth(jwt *jwtsvc.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "NO_TOKEN", "Not authorized to access this route. Please login.")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "NO_TOKEN", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwtsvc.ErrExpired) {
				response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Your session has expired. Please login again.")
			} else {
				response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token. Please login again.")
			}
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found. Please login again.")
			} else {
				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
			}
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("first_name", user.FirstName)
		c.Set("last_name", user.LastName)
		c.Set("role", string(user.Role))

		c.Next()
	}
}
