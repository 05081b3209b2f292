package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
)

// Simulator stands in for a card processor: it waits a configurable latency
// and declines a configurable fraction of charges. A decline is a normal
// typed outcome; only context cancellation is an error. Callers must await
// the outcome before persisting anything.
type Simulator struct {
	latency     time.Duration
	declineRate float64
	logger      ports.LoggerPort

	// roll is swappable in tests for deterministic outcomes.
	roll func() float64
}

func NewSimulator(latency time.Duration, declineRate float64, logger ports.LoggerPort) *Simulator {
	return &Simulator{
		latency:     latency,
		declineRate: declineRate,
		logger:      logger,
		roll:        rand.Float64,
	}
}

func (s *Simulator) Charge(ctx context.Context, userID string, amount int) (*domain.PaymentOutcome, error) {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if s.roll() < s.declineRate {
		return &domain.PaymentOutcome{Approved: false, Reason: "insufficient funds"}, nil
	}

	s.logger.Debug("Payment approved", map[string]interface{}{
		"user_id": userID,
		"amount":  amount,
	})
	return &domain.PaymentOutcome{Approved: true}, nil
}
