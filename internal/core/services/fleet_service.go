package services

import (
	"context"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
)

// FleetService exposes the catalog and the physical fleet. The catalog is
// read-only; instance status is the only mutable field, toggled by admins
// when a unit goes in or out of maintenance.
type FleetService struct {
	fleetRepo ports.FleetRepository
	logger    ports.LoggerPort
}

func NewFleetService(fleetRepo ports.FleetRepository, logger ports.LoggerPort) *FleetService {
	return &FleetService{fleetRepo: fleetRepo, logger: logger}
}

func (s *FleetService) ListModels(ctx context.Context) ([]*domain.BikeModel, error) {
	return s.fleetRepo.ListModels(ctx)
}

func (s *FleetService) GetModelByID(ctx context.Context, id string) (*domain.BikeModel, error) {
	return s.fleetRepo.GetModelByID(ctx, id)
}

func (s *FleetService) ListInstances(ctx context.Context, city string) ([]*domain.BikeInstance, error) {
	if city != "" {
		return s.fleetRepo.ListInstancesByCity(ctx, city)
	}
	return s.fleetRepo.ListInstances(ctx)
}

// SetInstanceStatus moves a unit between active and maintenance. Existing
// reservations on the instance are left alone; the unit just stops matching
// new availability searches.
func (s *FleetService) SetInstanceStatus(ctx context.Context, id string, status domain.InstanceStatus) (*domain.BikeInstance, error) {
	if status != domain.InstanceActive && status != domain.InstanceMaintenance {
		return nil, domain.ValidationError{Field: "status", Msg: "status must be active or maintenance"}
	}

	instances, err := s.fleetRepo.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	for _, instance := range instances {
		if instance.ID != id {
			continue
		}
		instance.Status = status
		if err := s.fleetRepo.UpdateInstance(ctx, instance); err != nil {
			return nil, err
		}
		s.logger.Info("Instance status changed", map[string]interface{}{
			"instance_id": id,
			"status":      string(status),
		})
		return instance, nil
	}
	return nil, domain.NotFoundError{Resource: "bike instance", ID: id}
}
