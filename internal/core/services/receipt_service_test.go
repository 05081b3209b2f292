package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

func TestBuildReceipt(t *testing.T) {
	fleet := &memFleet{
		models: []*domain.BikeModel{{ID: "s1", Name: "Sprint Courier S1"}},
	}
	service := NewReceiptService(fleet, NewPricingService(DefaultPricingConfig(), nopLogger{}), nopLogger{})

	reservation := &domain.Reservation{
		ID:        "RES-k3n9x2ab",
		UserID:    "client_1",
		BikeID:    "war-s1-01",
		StartDate: date(t, "2025-12-10"),
		EndDate:   date(t, "2025-12-15"),
		TotalCost: 150,
		Status:    domain.ReservationConfirmed,
		CreatedAt: time.Now(),
	}
	user := &domain.User{ID: "client_1", FullName: "Client User", City: "Warsaw"}

	pdf, filename, err := service.BuildReceipt(context.Background(), reservation, user)
	if err != nil {
		t.Fatalf("BuildReceipt: %v", err)
	}
	if filename != "velocity_receipt_RES-k3n9x2ab.pdf" {
		t.Errorf("filename = %s", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
