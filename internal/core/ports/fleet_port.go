package ports

import (
	"context"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

type FleetRepository interface {
	ListModels(ctx context.Context) ([]*domain.BikeModel, error)
	GetModelByID(ctx context.Context, id string) (*domain.BikeModel, error)
	ListInstances(ctx context.Context) ([]*domain.BikeInstance, error)
	ListInstancesByCity(ctx context.Context, city string) ([]*domain.BikeInstance, error)
	UpdateInstance(ctx context.Context, instance *domain.BikeInstance) error
}
