package http

import (
	"net/http"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office dashboard: user management, the
// reservation calendar and analytics. All routes sit behind AdminMiddleware.
type AdminHandler struct {
	userService      *services.UserService
	rentalService    *services.RentalService
	analyticsService *services.AnalyticsService
	clock            ports.Clock
	logger           ports.LoggerPort
	metrics          ports.MetricsPort
}

func NewAdminHandler(
	userService *services.UserService,
	rentalService *services.RentalService,
	analyticsService *services.AnalyticsService,
	clock ports.Clock,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		rentalService:    rentalService,
		analyticsService: analyticsService,
		clock:            clock,
		logger:           logger,
		metrics:          metrics,
	}
}

// @Summary List users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} UserResponse "Users"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required" example:"blocked"`
}

// @Summary Block or unblock a user
// @Description Blocked users keep their history but cannot log in or book
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetUserStatusRequest true "New status"
// @Success 200 {object} UserResponse "Updated user"
// @Failure 400 {object} errorResponse "Invalid status"
// @Failure 404 {object} errorResponse "Not found"
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.SetUserStatus(c.Request.Context(), c.Param("id"), domain.UserStatus(req.Status))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// @Summary Reservation calendar
// @Description All reservations intersecting a month, sorted by start date
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param month query string true "Month (YYYY-MM)" example(2025-12)
// @Success 200 {array} domain.Reservation "Reservations"
// @Failure 400 {object} errorResponse "Invalid month"
// @Router /admin/calendar [get]
func (h *AdminHandler) Calendar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	month := c.Query("month")
	if month == "" {
		month = h.clock.Today().Month()
	}
	reservations, err := h.rentalService.MonthReservations(c.Request.Context(), month)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

type UpdateReservationEndRequest struct {
	EndDate string `json:"endDate" binding:"required" example:"2025-12-18"`
}

// @Summary Move a reservation's end date
// @Description Shorten or extend a trip from the calendar; the charged total is not recomputed
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body UpdateReservationEndRequest true "New end date"
// @Success 200 {object} domain.Reservation "Updated reservation"
// @Failure 400 {object} errorResponse "Invalid date"
// @Failure 409 {object} errorResponse "Collides with another reservation"
// @Router /admin/reservations/{id}/end [put]
func (h *AdminHandler) UpdateReservationEnd(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req UpdateReservationEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	newEnd, err := domain.ParseDate(req.EndDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	reservation, err := h.rentalService.UpdateReservationEnd(c.Request.Context(), c.Param("id"), newEnd)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// @Summary End a trip now
// @Description Set the reservation's end date to today
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} domain.Reservation "Updated reservation"
// @Failure 400 {object} errorResponse "Today falls outside the valid rental band"
// @Router /admin/reservations/{id}/end-now [post]
func (h *AdminHandler) EndReservationNow(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	reservation, err := h.rentalService.UpdateReservationEnd(c.Request.Context(), c.Param("id"), h.clock.Today())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// @Summary Monthly revenue
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} services.MonthRevenue "Revenue per month"
// @Router /admin/analytics/revenue [get]
func (h *AdminHandler) Revenue(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	revenue, err := h.analyticsService.MonthlyRevenue(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

type OccupancyResponse struct {
	OccupancyRate int `json:"occupancyRate" example:"42"`
}

// @Summary Fleet occupancy
// @Description Share of fleet capacity rented out this month, as a percentage
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} OccupancyResponse "Occupancy"
// @Router /admin/analytics/occupancy [get]
func (h *AdminHandler) Occupancy(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	rate, err := h.analyticsService.OccupancyRate(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, OccupancyResponse{OccupancyRate: rate})
}

// @Summary Model popularity
// @Description Non-cancelled reservation counts per catalog model
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} services.ModelPopularity "Counts"
// @Router /admin/analytics/popularity [get]
func (h *AdminHandler) Popularity(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	popularity, err := h.analyticsService.Popularity(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, popularity)
}

// @Summary Export reservations CSV
// @Tags admin
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} binary "CSV export"
// @Router /admin/analytics/export [get]
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	data, err := h.analyticsService.ExportReservationsCSV(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="velocity_reservations.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
