package ports

import (
	"context"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

type ReservationRepository interface {
	// CreateReservation persists a new reservation. Implementations that can
	// enforce the no-overlap invariant themselves (e.g. an exclusion
	// constraint) return domain.ConflictError on violation.
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	ListReservationsByBikeID(ctx context.Context, bikeID string) ([]*domain.Reservation, error)
	ListReservationsByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error)
	UpdateReservation(ctx context.Context, r *domain.Reservation) error
}
