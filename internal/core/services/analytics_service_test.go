package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

func newAnalyticsFixture(t *testing.T, today string) (*AnalyticsService, *memReservations, *memFleet) {
	t.Helper()
	fleet := &memFleet{
		models: []*domain.BikeModel{
			{ID: "s1", Name: "Sprint Courier S1"},
			{ID: "xl", Name: "Cargo King XL"},
		},
		instances: []*domain.BikeInstance{
			{ID: "war-s1-01", ModelID: "s1", City: "Warsaw", Status: domain.InstanceActive},
			{ID: "war-xl-01", ModelID: "xl", City: "Warsaw", Status: domain.InstanceActive},
		},
	}
	reservations := &memReservations{}
	service := NewAnalyticsService(
		reservations,
		fleet,
		NewPricingService(DefaultPricingConfig(), nopLogger{}),
		fakeClock{today: date(t, today)},
		nopLogger{},
	)
	return service, reservations, fleet
}

func seedAnalyticsReservation(t *testing.T, repo *memReservations, id, bikeID, start, end string, cost int, status domain.ReservationStatus) {
	t.Helper()
	repo.items = append(repo.items, &domain.Reservation{
		ID:        id,
		UserID:    "client_1",
		BikeID:    bikeID,
		StartDate: date(t, start),
		EndDate:   date(t, end),
		TotalCost: cost,
		Status:    status,
		CreatedAt: time.Now(),
	})
}

func TestMonthlyRevenue(t *testing.T) {
	service, repo, _ := newAnalyticsFixture(t, "2025-12-01")
	ctx := context.Background()

	seedAnalyticsReservation(t, repo, "RES-1", "war-s1-01", "2025-11-10", "2025-11-14", 125, domain.ReservationCompleted)
	seedAnalyticsReservation(t, repo, "RES-2", "war-s1-01", "2025-11-20", "2025-11-24", 125, domain.ReservationConfirmed)
	seedAnalyticsReservation(t, repo, "RES-3", "war-xl-01", "2025-12-10", "2025-12-15", 150, domain.ReservationConfirmed)
	seedAnalyticsReservation(t, repo, "RES-4", "war-xl-01", "2025-12-20", "2025-12-24", 999, domain.ReservationCancelled)

	revenue, err := service.MonthlyRevenue(ctx)
	if err != nil {
		t.Fatalf("MonthlyRevenue: %v", err)
	}
	if len(revenue) != 2 {
		t.Fatalf("got %d months, want 2", len(revenue))
	}
	if revenue[0].Month != "2025-11" || revenue[0].Revenue != 250 {
		t.Errorf("November = %+v, want 250", revenue[0])
	}
	if revenue[1].Month != "2025-12" || revenue[1].Revenue != 150 {
		t.Errorf("December = %+v, want 150 (cancelled excluded)", revenue[1])
	}
}

func TestOccupancyRate(t *testing.T) {
	service, repo, _ := newAnalyticsFixture(t, "2025-12-01")
	ctx := context.Background()

	// 6 rented days against 2 instances x 30 days = 10%.
	seedAnalyticsReservation(t, repo, "RES-1", "war-s1-01", "2025-12-10", "2025-12-15", 150, domain.ReservationConfirmed)
	// Different month and cancelled rows are both ignored.
	seedAnalyticsReservation(t, repo, "RES-2", "war-s1-01", "2025-11-10", "2025-11-15", 150, domain.ReservationConfirmed)
	seedAnalyticsReservation(t, repo, "RES-3", "war-xl-01", "2025-12-10", "2025-12-15", 150, domain.ReservationCancelled)

	rate, err := service.OccupancyRate(ctx)
	if err != nil {
		t.Fatalf("OccupancyRate: %v", err)
	}
	if rate != 10 {
		t.Errorf("rate = %d%%, want 10%%", rate)
	}
}

func TestOccupancyRateEmptyFleet(t *testing.T) {
	service, _, fleet := newAnalyticsFixture(t, "2025-12-01")
	fleet.instances = nil

	rate, err := service.OccupancyRate(context.Background())
	if err != nil {
		t.Fatalf("OccupancyRate: %v", err)
	}
	if rate != 0 {
		t.Errorf("empty fleet should report 0%%, got %d", rate)
	}
}

func TestPopularity(t *testing.T) {
	service, repo, _ := newAnalyticsFixture(t, "2025-12-01")
	ctx := context.Background()

	seedAnalyticsReservation(t, repo, "RES-1", "war-s1-01", "2025-12-10", "2025-12-15", 150, domain.ReservationConfirmed)
	seedAnalyticsReservation(t, repo, "RES-2", "war-s1-01", "2025-12-16", "2025-12-20", 150, domain.ReservationCompleted)
	seedAnalyticsReservation(t, repo, "RES-3", "war-xl-01", "2025-12-10", "2025-12-15", 150, domain.ReservationCancelled)

	popularity, err := service.Popularity(ctx)
	if err != nil {
		t.Fatalf("Popularity: %v", err)
	}
	if len(popularity) != 2 {
		t.Fatalf("got %d entries, want one per catalog model", len(popularity))
	}
	byModel := map[string]int{}
	for _, p := range popularity {
		byModel[p.ModelID] = p.Count
	}
	if byModel["s1"] != 2 {
		t.Errorf("s1 count = %d, want 2", byModel["s1"])
	}
	if byModel["xl"] != 0 {
		t.Errorf("xl count = %d, want 0 (cancelled excluded)", byModel["xl"])
	}
}

func TestExportReservationsCSV(t *testing.T) {
	service, repo, _ := newAnalyticsFixture(t, "2025-12-01")
	seedAnalyticsReservation(t, repo, "RES-1", "war-s1-01", "2025-12-10", "2025-12-15", 150, domain.ReservationConfirmed)

	data, err := service.ExportReservationsCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportReservationsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if lines[0] != "Reservation ID,Bike ID,Start Date,End Date,Status,Cost (PLN)" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !bytes.Contains(data, []byte("RES-1,war-s1-01,2025-12-10,2025-12-15,confirmed,150")) {
		t.Errorf("row missing from export:\n%s", data)
	}
}

func TestModelIDFromBikeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"war-s1-01", "s1"},
		{"gda-e20-05", "e20"},
		{"malformed", "malformed"},
	}
	for _, tt := range tests {
		if got := modelIDFromBikeID(tt.in); got != tt.want {
			t.Errorf("modelIDFromBikeID(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
