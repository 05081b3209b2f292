package http

import (
	"net/http"
	"strings"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header must be a bearer token")
			return
		}

		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(authPayloadKey, payload)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, exists := getAuthPayload(c, authPayloadKey)
		if !exists {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if payload.Role != domain.Admin {
			newErrorResponse(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
