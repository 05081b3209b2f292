package http

import (
	"net/http"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService  *services.UserService
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

func NewAuthHandler(
	userService *services.UserService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required" example:"Jan Kowalski"`
	Email    string `json:"email" binding:"required,email" example:"jan@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"secret-password"`
	Phone    string `json:"phone" example:"+48 123 456 789"`
	City     string `json:"city" binding:"required" example:"Warsaw"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"client@velocity.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type UserResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	City       string `json:"city"`
	JoinedDate string `json:"joined_date"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       string(user.Role),
		Status:     string(user.Status),
		City:       user.City,
		JoinedDate: user.JoinedDate.String(),
	}
}

// @Summary Register
// @Description Create a client account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} UserResponse "Account created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 409 {object} errorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in register", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user := &domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
	}
	created, err := h.userService.Register(c.Request.Context(), user)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(created))
}

// @Summary Login
// @Description Verify credentials and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Token issued"
// @Failure 400 {object} errorResponse "Invalid credentials or blocked account"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login rejected", map[string]interface{}{
			"email": req.Email,
			"ip":    c.ClientIP(),
		})
		handleDomainError(c, err)
		return
	}

	token, err := h.tokenService.CreateToken(user)
	if err != nil {
		h.logger.Error("Failed to create token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// @Summary My profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse "Profile"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), payload.UserID)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Password *string `json:"password,omitempty"`
}

// @Summary Update profile
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} UserResponse "Updated profile"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), payload.UserID, services.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		City:     req.City,
		Password: req.Password,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(updated))
}
