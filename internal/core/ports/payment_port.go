package ports

import (
	"context"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// PaymentProcessor charges the given amount and reports the outcome. A
// decline is returned inside the outcome; the error is reserved for
// infrastructure failures and context cancellation.
type PaymentProcessor interface {
	Charge(ctx context.Context, userID string, amount int) (*domain.PaymentOutcome, error)
}
