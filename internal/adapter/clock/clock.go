package clock

import (
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// SystemClock implements ports.Clock on the wall clock.
type SystemClock struct{}

func New() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() domain.Date { return domain.DateOf(time.Now()) }
