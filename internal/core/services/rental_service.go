package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

const (
	reservationIDPrefix = "RES-"
	reservationIDLength = 8
	searchCacheTTL      = time.Minute
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RentalService owns the reservation lifecycle: availability search, booking,
// lazy status promotion and cancellation. All mutations go through the
// injected repository, which serializes writes (file driver) or enforces the
// no-overlap invariant transactionally (postgres driver).
type RentalService struct {
	reservationRepo ports.ReservationRepository
	fleetRepo       ports.FleetRepository
	pricing         *PricingService
	payment         ports.PaymentProcessor
	clock           ports.Clock
	logger          ports.LoggerPort
	validate        *validator.Validate
	cache           ports.CachePort
}

func NewRentalService(
	reservationRepo ports.ReservationRepository,
	fleetRepo ports.FleetRepository,
	pricing *PricingService,
	payment ports.PaymentProcessor,
	clock ports.Clock,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *RentalService {
	return &RentalService{
		reservationRepo: reservationRepo,
		fleetRepo:       fleetRepo,
		pricing:         pricing,
		payment:         payment,
		clock:           clock,
		logger:          logger,
		validate:        validate,
		cache:           cache,
	}
}

// IsBikeAvailable reports whether the bike instance has no non-cancelled
// reservation overlapping [start, end]. A bike with no reservations at all is
// vacuously available.
func (s *RentalService) IsBikeAvailable(ctx context.Context, bikeID string, start, end domain.Date) (bool, error) {
	existing, err := s.reservationRepo.ListReservationsByBikeID(ctx, bikeID)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.Blocks(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// SearchAvailableModels returns the distinct catalog models that have at
// least one available instance in the given city for the range. The user
// books a model; a concrete instance is resolved at commit time.
func (s *RentalService) SearchAvailableModels(ctx context.Context, city string, start, end domain.Date) ([]*domain.BikeModel, error) {
	if _, err := s.pricing.ValidateRange(start, end); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("search:%s:%s:%s", city, start, end)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var models []*domain.BikeModel
		if err := json.Unmarshal(cached, &models); err == nil {
			return models, nil
		}
	}

	instances, err := s.fleetRepo.ListInstancesByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	availableModelIDs := map[string]bool{}
	for _, instance := range instances {
		if instance.Status != domain.InstanceActive {
			continue
		}
		if availableModelIDs[instance.ModelID] {
			continue
		}
		free, err := s.IsBikeAvailable(ctx, instance.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			availableModelIDs[instance.ModelID] = true
		}
	}

	catalog, err := s.fleetRepo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	models := make([]*domain.BikeModel, 0, len(availableModelIDs))
	for _, m := range catalog {
		if availableModelIDs[m.ID] {
			models = append(models, m)
		}
	}

	if data, err := json.Marshal(models); err == nil {
		if err := s.cache.Set(cacheKey, data, searchCacheTTL); err != nil {
			s.logger.Warn("Failed to cache availability search", map[string]interface{}{
				"error": err.Error(),
				"key":   cacheKey,
			})
		}
	}

	s.logger.Info("Availability search completed", map[string]interface{}{
		"city":   city,
		"start":  start.String(),
		"end":    end.String(),
		"models": len(models),
	})
	return models, nil
}

// CreateReservation books one instance of the chosen model in the user's
// city. The concrete instance is resolved against the current reservation
// set, not an earlier availability scan, so a search gone stale surfaces as a
// conflict here instead of a double booking. Payment approval happens before
// anything is persisted.
func (s *RentalService) CreateReservation(ctx context.Context, user *domain.User, modelID string, start, end domain.Date) (*domain.Reservation, error) {
	days, err := s.pricing.ValidateRange(start, end)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserBlocked {
		return nil, domain.ValidationError{Field: "user", Msg: "account is blocked"}
	}

	if _, err := s.fleetRepo.GetModelByID(ctx, modelID); err != nil {
		return nil, err
	}

	instance, err := s.resolveInstance(ctx, user.City, modelID, start, end)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Quote(days)

	outcome, err := s.payment.Charge(ctx, user.ID, quote.Total)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}
	if !outcome.Approved {
		s.logger.Warn("Payment declined", map[string]interface{}{
			"user_id": user.ID,
			"amount":  quote.Total,
			"reason":  outcome.Reason,
		})
		return nil, domain.PaymentDeclinedError{Reason: outcome.Reason}
	}

	reservation := &domain.Reservation{
		ID:        generateReservationID(),
		UserID:    user.ID,
		BikeID:    instance.ID,
		StartDate: start,
		EndDate:   end,
		TotalCost: quote.Total,
		Status:    domain.ReservationConfirmed,
		CreatedAt: s.clock.Now(),
	}
	if err := s.validate.Struct(reservation); err != nil {
		return nil, domain.ValidationError{Field: "reservation", Msg: err.Error()}
	}

	// Last overlap check against the store the write goes to. The postgres
	// driver additionally enforces this with an exclusion constraint.
	free, err := s.IsBikeAvailable(ctx, instance.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.ConflictError{Resource: "reservation", Msg: "bike was booked while completing checkout"}
	}
	if err := s.reservationRepo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        user.ID,
		"bike_id":        instance.ID,
		"total_cost":     reservation.TotalCost,
	})
	return reservation, nil
}

// resolveInstance picks a concrete active instance of the model in the city
// with no conflicting reservation.
func (s *RentalService) resolveInstance(ctx context.Context, city, modelID string, start, end domain.Date) (*domain.BikeInstance, error) {
	instances, err := s.fleetRepo.ListInstancesByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	for _, instance := range instances {
		if instance.ModelID != modelID || instance.Status != domain.InstanceActive {
			continue
		}
		free, err := s.IsBikeAvailable(ctx, instance.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			return instance, nil
		}
	}
	return nil, domain.ConflictError{Resource: "reservation", Msg: "no bike of this model is available for the selected dates"}
}

// UserReservations returns the user's reservations, most recent start date
// first. Every call scans the whole collection and promotes confirmed
// reservations whose end date has passed; "completed" is derived state, the
// stored status is only a materialization of it.
func (s *RentalService) UserReservations(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	if _, err := s.promoteExpired(ctx); err != nil {
		return nil, err
	}

	mine, err := s.reservationRepo.ListReservationsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].StartDate.After(mine[j].StartDate)
	})
	return mine, nil
}

// GetReservation fetches one reservation. Non-admin requesters only see
// their own records; anything else reads as not found.
func (s *RentalService) GetReservation(ctx context.Context, id, requesterID string, admin bool) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && reservation.UserID != requesterID {
		return nil, domain.NotFoundError{Resource: "reservation", ID: id}
	}
	return reservation, nil
}

// CancelReservation transitions a reservation to cancelled. The cutoff is the
// trip start: once the start date is strictly in the past the trip is
// underway or over and can no longer be cancelled. Cancellation never refunds
// or recomputes the total cost.
func (s *RentalService) CancelReservation(ctx context.Context, id, requesterID string, admin bool) error {
	reservation, err := s.GetReservation(ctx, id, requesterID, admin)
	if err != nil {
		return err
	}
	if reservation.StartDate.Before(s.clock.Today()) {
		return domain.ValidationError{Field: "startDate", Msg: "cannot cancel a trip that has already started"}
	}

	reservation.Status = domain.ReservationCancelled
	if err := s.reservationRepo.UpdateReservation(ctx, reservation); err != nil {
		return err
	}

	s.logger.Info("Reservation cancelled", map[string]interface{}{
		"reservation_id": id,
		"user_id":        reservation.UserID,
	})
	return nil
}

// MonthReservations returns all reservations whose range intersects the
// given month (YYYY-MM), for the admin calendar.
func (s *RentalService) MonthReservations(ctx context.Context, month string) ([]*domain.Reservation, error) {
	first, err := domain.ParseDate(month + "-01")
	if err != nil {
		return nil, domain.ValidationError{Field: "month", Msg: "expected YYYY-MM"}
	}
	last := first.AddDays(31)
	for last.Month() != first.Month() {
		last = last.AddDays(-1)
	}

	if _, err := s.promoteExpired(ctx); err != nil {
		return nil, err
	}
	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Reservation
	for _, r := range all {
		if domain.RangesOverlap(first, last, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

// UpdateReservationEnd moves the end date of a reservation, used by the admin
// calendar (including "end now", which passes today). The new range must stay
// inside the valid rental band and must not collide with another reservation
// on the same bike. The stored total cost is deliberately left untouched.
func (s *RentalService) UpdateReservationEnd(ctx context.Context, id string, newEnd domain.Date) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.pricing.ValidateRange(reservation.StartDate, newEnd); err != nil {
		return nil, err
	}

	others, err := s.reservationRepo.ListReservationsByBikeID(ctx, reservation.BikeID)
	if err != nil {
		return nil, err
	}
	for _, other := range others {
		if other.ID == reservation.ID {
			continue
		}
		if other.Blocks(reservation.StartDate, newEnd) {
			return nil, domain.ConflictError{Resource: "reservation", Msg: "new end date collides with another reservation"}
		}
	}

	reservation.EndDate = newEnd
	if err := s.reservationRepo.UpdateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// PromoteExpiredSweep runs the promotion pass on its own, for the scheduled
// nightly job. It is idempotent: a second run with the same clock changes
// nothing.
func (s *RentalService) PromoteExpiredSweep(ctx context.Context) (int, error) {
	return s.promoteExpired(ctx)
}

func (s *RentalService) promoteExpired(ctx context.Context) (int, error) {
	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return 0, err
	}
	promoted, changed := domain.PromoteExpired(all, s.clock.Today())
	if !changed {
		return 0, nil
	}
	count := 0
	for i := range all {
		if promoted[i] == all[i] {
			continue
		}
		if err := s.reservationRepo.UpdateReservation(ctx, promoted[i]); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Info("Promoted expired reservations", map[string]interface{}{
		"count": count,
	})
	return count, nil
}

// generateReservationID produces a human-scannable token: fixed prefix plus a
// random base-36 suffix. Uniqueness is probabilistic; a collision is accepted
// risk, not a condition to design around.
func generateReservationID() string {
	suffix := make([]byte, reservationIDLength)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}
	return reservationIDPrefix + string(suffix)
}
