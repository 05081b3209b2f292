package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a booking confirmation PDF for a reservation.
type ReceiptService struct {
	fleetRepo ports.FleetRepository
	pricing   *PricingService
	logger    ports.LoggerPort
}

func NewReceiptService(fleetRepo ports.FleetRepository, pricing *PricingService, logger ports.LoggerPort) *ReceiptService {
	return &ReceiptService{fleetRepo: fleetRepo, pricing: pricing, logger: logger}
}

// BuildReceipt returns the PDF bytes and a download filename.
func (s *ReceiptService) BuildReceipt(ctx context.Context, reservation *domain.Reservation, user *domain.User) ([]byte, string, error) {
	modelName := reservation.BikeID
	if model, err := s.fleetRepo.GetModelByID(ctx, modelIDFromBikeID(reservation.BikeID)); err == nil {
		modelName = model.Name
	}
	days := s.pricing.RentalDays(reservation.StartDate, reservation.EndDate)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VELOCITY RENTAL RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reservation : %s", reservation.ID),
		fmt.Sprintf("Customer    : %s", user.FullName),
		fmt.Sprintf("Bike        : %s (%s)", modelName, reservation.BikeID),
		fmt.Sprintf("City        : %s", user.City),
		fmt.Sprintf("Dates       : %s - %s (%d days)", reservation.StartDate, reservation.EndDate, days),
		fmt.Sprintf("Status      : %s", reservation.Status),
		fmt.Sprintf("Total       : %d PLN", reservation.TotalCost),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Pick up your e-bike at the city hub with a valid ID. The total was charged at booking time and does not change on cancellation.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("velocity_receipt_%s.pdf", reservation.ID)
	return buf.Bytes(), filename, nil
}
