package services

import (
	"fmt"
	"math"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
)

// Rental length is bounded before any availability search runs.
const (
	MinRentalDays = 3
	MaxRentalDays = 21
)

// Volume discount tiers off the base daily rate:
//
//	3–7 days   →  0%
//	8–14 days  → 20%
//	15–21 days → 40%
const (
	midTierMinDays  = 8
	longTierMinDays = 15

	midTierDiscount  = 0.20
	longTierDiscount = 0.40
)

// PricingConfig holds the rate parameters. In production these would come
// from the catalog; the demo uses one flat base rate in PLN.
type PricingConfig struct {
	BaseDailyRate int
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{BaseDailyRate: 25}
}

type PricingService struct {
	config PricingConfig
	logger ports.LoggerPort
}

func NewPricingService(config PricingConfig, logger ports.LoggerPort) *PricingService {
	if config.BaseDailyRate <= 0 {
		config = DefaultPricingConfig()
	}
	return &PricingService{config: config, logger: logger}
}

// RentalDays is the inclusive day count between two calendar dates:
// day 29 to day 31 is 3 days, Monday to Monday is 8.
func (s *PricingService) RentalDays(start, end domain.Date) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := start.DaysUntil(end)
	if diff < 0 {
		diff = -diff
	}
	return diff + 1
}

// ValidateRange checks a requested rental window and returns its inclusive
// day count. Rejections are domain.ValidationError with a human-readable
// reason; nothing is persisted.
func (s *PricingService) ValidateRange(start, end domain.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, domain.ValidationError{Field: "dates", Msg: "both start and end dates are required"}
	}
	if end.Before(start) {
		return 0, domain.ValidationError{Field: "endDate", Msg: "end date cannot be before start date"}
	}
	days := s.RentalDays(start, end)
	if days < MinRentalDays {
		return 0, domain.ValidationError{Field: "dates", Msg: fmt.Sprintf("minimum rental period is %d days", MinRentalDays)}
	}
	if days > MaxRentalDays {
		return 0, domain.ValidationError{Field: "dates", Msg: fmt.Sprintf("maximum rental period is %d days", MaxRentalDays)}
	}
	return days, nil
}

// Quote computes the tiered daily rate and total for a rental length.
// Rounding is half-up on the per-day rate, not on the total.
func (s *PricingService) Quote(days int) *domain.PriceQuote {
	discount := 0.0
	switch {
	case days >= longTierMinDays:
		discount = longTierDiscount
	case days >= midTierMinDays:
		discount = midTierDiscount
	}

	dailyRate := int(math.Round(float64(s.config.BaseDailyRate) * (1 - discount)))

	quote := &domain.PriceQuote{
		Days:      days,
		DailyRate: dailyRate,
		Total:     dailyRate * days,
	}
	if discount > 0 {
		oldRate := s.config.BaseDailyRate
		quote.OldRate = &oldRate
		quote.DiscountLabel = fmt.Sprintf("-%d%%", int(discount*100))
	}
	return quote
}
