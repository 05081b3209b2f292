package ports

import (
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// Clock abstracts "now" so lifecycle promotion and cancellation cutoffs are
// testable with a fixed date.
type Clock interface {
	Now() time.Time
	Today() domain.Date
}
