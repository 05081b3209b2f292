package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), nopLogger{})
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func testDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func testReservation(t *testing.T, id, bikeID, start, end string) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:        id,
		UserID:    "client_1",
		BikeID:    bikeID,
		StartDate: testDate(t, start),
		EndDate:   testDate(t, end),
		TotalCost: 150,
		Status:    domain.ReservationConfirmed,
		CreatedAt: time.Now(),
	}
}

func TestReservationStoreRoundtrip(t *testing.T) {
	store := newTestStore(t)
	repo := NewReservationStore(store)
	ctx := context.Background()

	r := testReservation(t, "RES-roundtrp", "war-s1-01", "2025-12-10", "2025-12-15")
	if err := repo.CreateReservation(ctx, r); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	// A second store over the same directory sees the persisted record.
	again := NewReservationStore(store)
	got, err := again.GetReservationByID(ctx, "RES-roundtrp")
	if err != nil {
		t.Fatalf("GetReservationByID: %v", err)
	}
	if got.BikeID != r.BikeID || !got.StartDate.Equal(r.StartDate) || got.TotalCost != r.TotalCost {
		t.Errorf("roundtrip mismatch: %+v", got)
	}

	// Mutating the returned copy must not leak into the store.
	got.Status = domain.ReservationCancelled
	fresh, _ := repo.GetReservationByID(ctx, "RES-roundtrp")
	if fresh.Status != domain.ReservationConfirmed {
		t.Error("stored record mutated through a returned copy")
	}
}

func TestReservationStoreRejectsOverlapUnderLock(t *testing.T) {
	store := newTestStore(t)
	repo := NewReservationStore(store)
	ctx := context.Background()

	if err := repo.CreateReservation(ctx, testReservation(t, "RES-first", "war-s1-01", "2025-12-10", "2025-12-15")); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	err := repo.CreateReservation(ctx, testReservation(t, "RES-second", "war-s1-01", "2025-12-14", "2025-12-18"))
	if !domain.IsConflict(err) {
		t.Errorf("overlap: expected conflict, got %v", err)
	}

	err = repo.CreateReservation(ctx, testReservation(t, "RES-first", "war-xl-01", "2026-01-10", "2026-01-15"))
	if !domain.IsConflict(err) {
		t.Errorf("duplicate id: expected conflict, got %v", err)
	}

	// Other bikes and adjacent ranges are fine.
	if err := repo.CreateReservation(ctx, testReservation(t, "RES-otherbike", "war-xl-01", "2025-12-10", "2025-12-15")); err != nil {
		t.Errorf("different bike rejected: %v", err)
	}
	if err := repo.CreateReservation(ctx, testReservation(t, "RES-adjacent", "war-s1-01", "2025-12-16", "2025-12-20")); err != nil {
		t.Errorf("adjacent range rejected: %v", err)
	}
}

func TestReservationStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	repo := NewReservationStore(store)
	ctx := context.Background()

	r := testReservation(t, "RES-update", "war-s1-01", "2025-12-10", "2025-12-15")
	if err := repo.CreateReservation(ctx, r); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	r.Status = domain.ReservationCancelled
	if err := repo.UpdateReservation(ctx, r); err != nil {
		t.Fatalf("UpdateReservation: %v", err)
	}
	got, _ := repo.GetReservationByID(ctx, "RES-update")
	if got.Status != domain.ReservationCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}

	missing := testReservation(t, "RES-missing1", "war-s1-01", "2025-12-10", "2025-12-15")
	if err := repo.UpdateReservation(ctx, missing); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCorruptReservationsFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, nopLogger{})
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reservations.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	repo := NewReservationStore(store)
	all, err := repo.ListReservations(context.Background())
	if err != nil {
		t.Fatalf("corrupt file should read as empty, got %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d reservations from corrupt file, want 0", len(all))
	}

	// And the store is writable again afterwards.
	if err := repo.CreateReservation(context.Background(), testReservation(t, "RES-afterbad", "war-s1-01", "2025-12-10", "2025-12-15")); err != nil {
		t.Errorf("CreateReservation after corruption: %v", err)
	}
}

func TestFleetStoreSeedsOnFirstRun(t *testing.T) {
	store := newTestStore(t)
	fleet, err := NewFleetStore(store)
	if err != nil {
		t.Fatalf("NewFleetStore: %v", err)
	}
	ctx := context.Background()

	models, err := fleet.ListModels(ctx)
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 3 {
		t.Errorf("got %d models, want the 3 seeded ones", len(models))
	}

	instances, err := fleet.ListInstances(ctx)
	if err != nil {
		t.Fatalf("ListInstances: %v", err)
	}
	// Sum of the allocation table.
	if len(instances) != 35 {
		t.Errorf("got %d instances, want 35", len(instances))
	}

	warsaw, err := fleet.ListInstancesByCity(ctx, "Warsaw")
	if err != nil {
		t.Fatalf("ListInstancesByCity: %v", err)
	}
	if len(warsaw) != 13 {
		t.Errorf("got %d Warsaw instances, want 13", len(warsaw))
	}
	found := false
	for _, instance := range warsaw {
		if instance.ID == "war-s1-01" {
			found = true
			if instance.Status != domain.InstanceActive {
				t.Errorf("seeded instance should start active, got %s", instance.Status)
			}
		}
	}
	if !found {
		t.Error("expected generated id war-s1-01")
	}
}

func TestFleetStoreUpdateInstance(t *testing.T) {
	store := newTestStore(t)
	fleet, err := NewFleetStore(store)
	if err != nil {
		t.Fatalf("NewFleetStore: %v", err)
	}
	ctx := context.Background()

	err = fleet.UpdateInstance(ctx, &domain.BikeInstance{
		ID:      "war-s1-01",
		ModelID: "s1",
		City:    "Warsaw",
		Status:  domain.InstanceMaintenance,
	})
	if err != nil {
		t.Fatalf("UpdateInstance: %v", err)
	}

	instances, _ := fleet.ListInstancesByCity(ctx, "Warsaw")
	for _, instance := range instances {
		if instance.ID == "war-s1-01" && instance.Status != domain.InstanceMaintenance {
			t.Errorf("status = %s, want maintenance", instance.Status)
		}
	}

	err = fleet.UpdateInstance(ctx, &domain.BikeInstance{ID: "nope-s1-99"})
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUserStoreSeedsDemoAccounts(t *testing.T) {
	store := newTestStore(t)
	users, err := NewUserStore(store)
	if err != nil {
		t.Fatalf("NewUserStore: %v", err)
	}
	ctx := context.Background()

	admin, err := users.GetUserByEmail(ctx, "ADMIN@velocity.com")
	if err != nil {
		t.Fatalf("email lookup should be case-insensitive: %v", err)
	}
	if admin.Role != domain.Admin {
		t.Errorf("role = %s, want admin", admin.Role)
	}

	if err := users.CreateUser(ctx, &domain.User{
		ID:       "dup",
		FullName: "Dup",
		Email:    "client@velocity.com",
		Password: "password123",
		City:     "Warsaw",
	}); !domain.IsConflict(err) {
		t.Errorf("duplicate email: expected conflict, got %v", err)
	}
}
