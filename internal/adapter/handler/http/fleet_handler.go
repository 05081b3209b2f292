package http

import (
	"net/http"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	fleetService *services.FleetService
	metrics      ports.MetricsPort
}

func NewFleetHandler(fleetService *services.FleetService, metrics ports.MetricsPort) *FleetHandler {
	return &FleetHandler{fleetService: fleetService, metrics: metrics}
}

// @Summary Bike catalog
// @Description The bike models offered across all cities
// @Tags fleet
// @Produce json
// @Success 200 {array} domain.BikeModel "Models"
// @Router /fleet/models [get]
func (h *FleetHandler) ListModels(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	models, err := h.fleetService.ListModels(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// @Summary Get a model
// @Tags fleet
// @Produce json
// @Param id path string true "Model ID" example(s1)
// @Success 200 {object} domain.BikeModel "Model"
// @Failure 404 {object} errorResponse "Not found"
// @Router /fleet/models/{id} [get]
func (h *FleetHandler) GetModel(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	model, err := h.fleetService.GetModelByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, model)
}

// @Summary List bike instances
// @Description Physical units, optionally filtered by city
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param city query string false "City filter" example(Warsaw)
// @Success 200 {array} domain.BikeInstance "Instances"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /admin/fleet/instances [get]
func (h *FleetHandler) ListInstances(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	instances, err := h.fleetService.ListInstances(c.Request.Context(), c.Query("city"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, instances)
}

type SetInstanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"maintenance"`
}

// @Summary Set instance status
// @Description Move a unit between active and maintenance
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Instance ID" example(war-s1-01)
// @Param request body SetInstanceStatusRequest true "New status"
// @Success 200 {object} domain.BikeInstance "Updated instance"
// @Failure 400 {object} errorResponse "Invalid status"
// @Failure 404 {object} errorResponse "Not found"
// @Router /admin/fleet/instances/{id} [put]
func (h *FleetHandler) SetInstanceStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req SetInstanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	instance, err := h.fleetService.SetInstanceStatus(c.Request.Context(), c.Param("id"), domain.InstanceStatus(req.Status))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}
