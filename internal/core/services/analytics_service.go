package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
)

// Occupancy uses a flat 30-day month; good enough for a dashboard figure.
const occupancyDaysInMonth = 30

type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
}

type ModelPopularity struct {
	ModelID string `json:"modelId"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// AnalyticsService aggregates reservation data for the admin dashboard. Pure
// reads; cancelled reservations are excluded everywhere.
type AnalyticsService struct {
	reservationRepo ports.ReservationRepository
	fleetRepo       ports.FleetRepository
	pricing         *PricingService
	clock           ports.Clock
	logger          ports.LoggerPort
}

func NewAnalyticsService(
	reservationRepo ports.ReservationRepository,
	fleetRepo ports.FleetRepository,
	pricing *PricingService,
	clock ports.Clock,
	logger ports.LoggerPort,
) *AnalyticsService {
	return &AnalyticsService{
		reservationRepo: reservationRepo,
		fleetRepo:       fleetRepo,
		pricing:         pricing,
		clock:           clock,
		logger:          logger,
	}
}

// MonthlyRevenue sums totalCost per start month across non-cancelled
// reservations, sorted chronologically.
func (s *AnalyticsService) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	grouped := map[string]int{}
	for _, r := range all {
		if r.Status == domain.ReservationCancelled {
			continue
		}
		grouped[r.StartDate.Month()] += r.TotalCost
	}
	months := make([]string, 0, len(grouped))
	for m := range grouped {
		months = append(months, m)
	}
	sort.Strings(months)
	out := make([]MonthRevenue, len(months))
	for i, m := range months {
		out[i] = MonthRevenue{Month: m, Revenue: grouped[m]}
	}
	return out, nil
}

// OccupancyRate is the share of fleet capacity rented out this month:
// total days rented / (fleet size × 30), as a rounded percentage.
func (s *AnalyticsService) OccupancyRate(ctx context.Context) (int, error) {
	instances, err := s.fleetRepo.ListInstances(ctx)
	if err != nil {
		return 0, err
	}
	capacity := len(instances) * occupancyDaysInMonth
	if capacity == 0 {
		return 0, nil
	}

	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return 0, err
	}
	currentMonth := s.clock.Today().Month()
	daysRented := 0
	for _, r := range all {
		if r.Status == domain.ReservationCancelled || r.StartDate.Month() != currentMonth {
			continue
		}
		daysRented += s.pricing.RentalDays(r.StartDate, r.EndDate)
	}
	return int(math.Round(float64(daysRented) / float64(capacity) * 100)), nil
}

// Popularity counts non-cancelled reservations per catalog model. The model
// is recovered from the instance id ("war-xl-01" → "xl").
func (s *AnalyticsService) Popularity(ctx context.Context) ([]ModelPopularity, error) {
	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, r := range all {
		if r.Status == domain.ReservationCancelled {
			continue
		}
		counts[modelIDFromBikeID(r.BikeID)]++
	}

	models, err := s.fleetRepo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ModelPopularity, len(models))
	for i, m := range models {
		out[i] = ModelPopularity{ModelID: m.ID, Name: m.Name, Count: counts[m.ID]}
	}
	return out, nil
}

// ExportReservationsCSV renders the full reservation history in the same
// column layout the old dashboard download used.
func (s *AnalyticsService) ExportReservationsCSV(ctx context.Context) ([]byte, error) {
	all, err := s.reservationRepo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Reservation ID", "Bike ID", "Start Date", "End Date", "Status", "Cost (PLN)"}); err != nil {
		return nil, err
	}
	for _, r := range all {
		record := []string{
			r.ID,
			r.BikeID,
			r.StartDate.String(),
			r.EndDate.String(),
			string(r.Status),
			fmt.Sprintf("%d", r.TotalCost),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("Exported reservations CSV", map[string]interface{}{
		"rows": len(all),
	})
	return buf.Bytes(), nil
}

// modelIDFromBikeID extracts the model segment of an instance id
// ({cityPrefix}-{modelId}-{sequence}).
func modelIDFromBikeID(bikeID string) string {
	parts := strings.SplitN(bikeID, "-", 3)
	if len(parts) < 2 {
		return bikeID
	}
	return parts[1]
}
