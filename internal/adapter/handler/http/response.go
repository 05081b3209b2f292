package http

import (
	"net/http"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const authPayloadKey = "authorization_payload"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

// handleDomainError maps the business error taxonomy to HTTP statuses.
// Anything unrecognized is an internal error; the message is not leaked.
func handleDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case domain.IsPaymentDeclined(err):
		newErrorResponse(c, http.StatusPaymentRequired, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
