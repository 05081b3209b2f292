package http

import (
	"net/http"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	rentalService  *services.RentalService
	pricingService *services.PricingService
	receiptService *services.ReceiptService
	userService    *services.UserService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

func NewRentalHandler(
	rentalService *services.RentalService,
	pricingService *services.PricingService,
	receiptService *services.ReceiptService,
	userService *services.UserService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *RentalHandler {
	return &RentalHandler{
		rentalService:  rentalService,
		pricingService: pricingService,
		receiptService: receiptService,
		userService:    userService,
		logger:         logger,
		metrics:        metrics,
	}
}

type dateRangeQuery struct {
	StartDate string `form:"startDate" binding:"required" example:"2025-12-10"`
	EndDate   string `form:"endDate" binding:"required" example:"2025-12-15"`
}

func (q dateRangeQuery) parse() (domain.Date, domain.Date, error) {
	start, err := domain.ParseDate(q.StartDate)
	if err != nil {
		return domain.Date{}, domain.Date{}, domain.ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD"}
	}
	end, err := domain.ParseDate(q.EndDate)
	if err != nil {
		return domain.Date{}, domain.Date{}, domain.ValidationError{Field: "endDate", Msg: "expected YYYY-MM-DD"}
	}
	return start, end, nil
}

// @Summary Search available models
// @Description List catalog models with at least one free bike in the city for the date range
// @Tags rentals
// @Security BearerAuth
// @Produce json
// @Param city query string true "City" example(Warsaw)
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.BikeModel "Available models"
// @Failure 400 {object} errorResponse "Invalid date range"
// @Router /rentals/search [get]
func (h *RentalHandler) Search(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	city := c.Query("city")
	if city == "" {
		newErrorResponse(c, http.StatusBadRequest, "city is required")
		return
	}
	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	from, to, err := q.parse()
	if err != nil {
		handleDomainError(c, err)
		return
	}

	models, err := h.rentalService.SearchAvailableModels(c.Request.Context(), city, from, to)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// @Summary Price quote
// @Description Compute the tiered price for a date range without booking
// @Tags rentals
// @Security BearerAuth
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.PriceQuote "Quote"
// @Failure 400 {object} errorResponse "Invalid date range"
// @Router /rentals/quote [get]
func (h *RentalHandler) Quote(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	from, to, err := q.parse()
	if err != nil {
		handleDomainError(c, err)
		return
	}
	days, err := h.pricingService.ValidateRange(from, to)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.pricingService.Quote(days))
}

type CreateReservationRequest struct {
	ModelID   string `json:"modelId" binding:"required" example:"s1"`
	StartDate string `json:"startDate" binding:"required" example:"2025-12-10"`
	EndDate   string `json:"endDate" binding:"required" example:"2025-12-15"`
}

// @Summary Book a bike
// @Description Charge the rental and reserve a concrete bike of the chosen model in the user's city
// @Tags rentals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "Booking data"
// @Success 201 {object} domain.Reservation "Reservation created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 402 {object} errorResponse "Payment declined"
// @Failure 409 {object} errorResponse "No bike available for the dates"
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	from, to, err := dateRangeQuery{StartDate: req.StartDate, EndDate: req.EndDate}.parse()
	if err != nil {
		handleDomainError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), payload.UserID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	reservation, err := h.rentalService.CreateReservation(c.Request.Context(), user, req.ModelID, from, to)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// @Summary My rentals
// @Description List the caller's reservations, newest trip first
// @Tags rentals
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Reservation "Reservations"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /rentals [get]
func (h *RentalHandler) ListMine(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reservations, err := h.rentalService.UserReservations(c.Request.Context(), payload.UserID)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// @Summary Get a reservation
// @Tags rentals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID" example(RES-k3n9x2ab)
// @Success 200 {object} domain.Reservation "Reservation"
// @Failure 404 {object} errorResponse "Not found"
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reservation, err := h.rentalService.GetReservation(c.Request.Context(), c.Param("id"), payload.UserID, payload.Role == domain.Admin)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// @Summary Cancel a reservation
// @Description Cancel a trip before its start date; the charged total is not refunded
// @Tags rentals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} successResponse "Cancelled"
// @Failure 400 {object} errorResponse "Trip already started"
// @Failure 404 {object} errorResponse "Not found"
// @Router /rentals/{id} [delete]
func (h *RentalHandler) Cancel(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.rentalService.CancelReservation(c.Request.Context(), c.Param("id"), payload.UserID, payload.Role == domain.Admin); err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse{Message: "Reservation cancelled"})
}

// @Summary Download receipt
// @Description Booking confirmation as a PDF
// @Tags rentals
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Reservation ID"
// @Success 200 {file} binary "PDF receipt"
// @Failure 404 {object} errorResponse "Not found"
// @Router /rentals/{id}/receipt [get]
func (h *RentalHandler) Receipt(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reservation, err := h.rentalService.GetReservation(c.Request.Context(), c.Param("id"), payload.UserID, payload.Role == domain.Admin)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), reservation.UserID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	pdf, filename, err := h.receiptService.BuildReceipt(c.Request.Context(), reservation, user)
	if err != nil {
		h.logger.Error("Failed to render receipt", map[string]interface{}{
			"error":          err.Error(),
			"reservation_id": reservation.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
