package storage

import (
	"context"
	"errors"
	"io/fs"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// ReservationStore implements ports.ReservationRepository on the shared file
// store.
type ReservationStore struct {
	store *FileStore
}

func NewReservationStore(store *FileStore) *ReservationStore {
	return &ReservationStore{store: store}
}

// loadLocked reads the collection without taking a lock; the caller holds one.
func (r *ReservationStore) loadLocked() ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	if err := r.store.read(reservationsKey, &out); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.Reservation{}, nil
		}
		return nil, err
	}
	return out, nil
}

// CreateReservation re-validates the no-overlap invariant under the write
// lock before appending, so two in-flight bookings for the same bike
// serialize here even if both passed the service-level check.
func (r *ReservationStore) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadLocked()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == reservation.ID {
			return domain.ConflictError{Resource: "reservation", Msg: "duplicate reservation id"}
		}
		if existing.BikeID == reservation.BikeID && existing.Blocks(reservation.StartDate, reservation.EndDate) {
			return domain.ConflictError{Resource: "reservation", Msg: "bike already booked for an overlapping range"}
		}
	}
	all = append(all, reservation)
	return r.store.write(reservationsKey, all)
}

func (r *ReservationStore) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all, err := r.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, reservation := range all {
		if reservation.ID == id {
			found := *reservation
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "reservation", ID: id}
}

func (r *ReservationStore) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.loadLocked()
}

func (r *ReservationStore) ListReservationsByBikeID(ctx context.Context, bikeID string) ([]*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all, err := r.loadLocked()
	if err != nil {
		return nil, err
	}
	var out []*domain.Reservation
	for _, reservation := range all {
		if reservation.BikeID == bikeID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *ReservationStore) ListReservationsByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all, err := r.loadLocked()
	if err != nil {
		return nil, err
	}
	var out []*domain.Reservation
	for _, reservation := range all {
		if reservation.UserID == userID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *ReservationStore) UpdateReservation(ctx context.Context, reservation *domain.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadLocked()
	if err != nil {
		return err
	}
	for i, existing := range all {
		if existing.ID == reservation.ID {
			updated := *reservation
			all[i] = &updated
			return r.store.write(reservationsKey, all)
		}
	}
	return domain.NotFoundError{Resource: "reservation", ID: reservation.ID}
}
