package services

import (
	"context"
	"errors"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// In-memory doubles for the repository and infrastructure ports.

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type nopCache struct{}

func (nopCache) Get(string) ([]byte, error)                 { return nil, errors.New("cache miss") }
func (nopCache) Set(string, []byte, time.Duration) error    { return nil }
func (nopCache) Delete(string) error                        { return nil }

type fakeClock struct {
	today domain.Date
}

func (c fakeClock) Now() time.Time       { return c.today.Time() }
func (c fakeClock) Today() domain.Date   { return c.today }

type stubPayment struct {
	outcome *domain.PaymentOutcome
	err     error
	charges int
}

func (p *stubPayment) Charge(ctx context.Context, userID string, amount int) (*domain.PaymentOutcome, error) {
	p.charges++
	if p.err != nil {
		return nil, p.err
	}
	if p.outcome != nil {
		return p.outcome, nil
	}
	return &domain.PaymentOutcome{Approved: true}, nil
}

type memReservations struct {
	items []*domain.Reservation
}

func (m *memReservations) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	for _, existing := range m.items {
		if existing.ID == r.ID {
			return domain.ConflictError{Resource: "reservation", Msg: "duplicate reservation id"}
		}
		if existing.BikeID == r.BikeID && existing.Blocks(r.StartDate, r.EndDate) {
			return domain.ConflictError{Resource: "reservation", Msg: "bike already booked for an overlapping range"}
		}
	}
	stored := *r
	m.items = append(m.items, &stored)
	return nil
}

func (m *memReservations) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	for _, r := range m.items {
		if r.ID == id {
			found := *r
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "reservation", ID: id}
}

func (m *memReservations) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return m.items, nil
}

func (m *memReservations) ListReservationsByBikeID(ctx context.Context, bikeID string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range m.items {
		if r.BikeID == bikeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) ListReservationsByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) UpdateReservation(ctx context.Context, r *domain.Reservation) error {
	for i, existing := range m.items {
		if existing.ID == r.ID {
			updated := *r
			m.items[i] = &updated
			return nil
		}
	}
	return domain.NotFoundError{Resource: "reservation", ID: r.ID}
}

type memFleet struct {
	models    []*domain.BikeModel
	instances []*domain.BikeInstance
}

func (m *memFleet) ListModels(ctx context.Context) ([]*domain.BikeModel, error) {
	return m.models, nil
}

func (m *memFleet) GetModelByID(ctx context.Context, id string) (*domain.BikeModel, error) {
	for _, model := range m.models {
		if model.ID == id {
			return model, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "bike model", ID: id}
}

func (m *memFleet) ListInstances(ctx context.Context) ([]*domain.BikeInstance, error) {
	return m.instances, nil
}

func (m *memFleet) ListInstancesByCity(ctx context.Context, city string) ([]*domain.BikeInstance, error) {
	var out []*domain.BikeInstance
	for _, instance := range m.instances {
		if instance.City == city {
			out = append(out, instance)
		}
	}
	return out, nil
}

func (m *memFleet) UpdateInstance(ctx context.Context, instance *domain.BikeInstance) error {
	for i, existing := range m.instances {
		if existing.ID == instance.ID {
			m.instances[i] = instance
			return nil
		}
	}
	return domain.NotFoundError{Resource: "bike instance", ID: instance.ID}
}

type memUsers struct {
	items []*domain.User
}

func (m *memUsers) CreateUser(ctx context.Context, user *domain.User) error {
	stored := *user
	m.items = append(m.items, &stored)
	return nil
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "user", ID: id}
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "user", ID: email}
}

func (m *memUsers) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.items, nil
}

func (m *memUsers) UpdateUser(ctx context.Context, user *domain.User) error {
	for i, existing := range m.items {
		if existing.ID == user.ID {
			updated := *user
			m.items[i] = &updated
			return nil
		}
	}
	return domain.NotFoundError{Resource: "user", ID: user.ID}
}
