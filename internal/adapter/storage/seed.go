package storage

import (
	"fmt"
	"strings"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// Baseline catalog and demo accounts, written on first run (or after a
// corrupt file) so the service never starts empty.

func seedModels() []*domain.BikeModel {
	return []*domain.BikeModel{
		{
			ID:          "s1",
			Name:        "Sprint Courier S1",
			Category:    "Agility",
			Description: "Lightweight and agile.",
			Stats:       domain.BikeStats{Speed: 45, Range: 80, Capacity: 40},
			ImageEmoji:  "🛵",
		},
		{
			ID:          "e20",
			Name:        "Endurance Pro 2.0",
			Category:    "Long-Shift",
			Description: "Dual-battery system.",
			Stats:       domain.BikeStats{Speed: 35, Range: 100, Capacity: 60},
			ImageEmoji:  "🔋",
		},
		{
			ID:          "xl",
			Name:        "Cargo King XL",
			Category:    "Heavy Duty",
			Description: "Front insulated box.",
			Stats:       domain.BikeStats{Speed: 25, Range: 60, Capacity: 100},
			ImageEmoji:  "🍕",
		},
	}
}

func seedAllocations() []domain.FleetAllocation {
	return []domain.FleetAllocation{
		{ModelID: "s1", City: "Warsaw", Amount: 6},
		{ModelID: "e20", City: "Warsaw", Amount: 4},
		{ModelID: "xl", City: "Warsaw", Amount: 3},
		{ModelID: "s1", City: "Gdansk", Amount: 4},
		{ModelID: "e20", City: "Gdansk", Amount: 5},
		{ModelID: "xl", City: "Gdansk", Amount: 2},
		{ModelID: "s1", City: "Krakow", Amount: 5},
		{ModelID: "e20", City: "Krakow", Amount: 3},
		{ModelID: "xl", City: "Wroclaw", Amount: 3},
	}
}

// GenerateInstances expands the allocation table into physical units with ids
// shaped {cityPrefix}-{modelId}-{NN}, e.g. "war-s1-01".
func GenerateInstances(allocations []domain.FleetAllocation) []*domain.BikeInstance {
	var out []*domain.BikeInstance
	for _, alloc := range allocations {
		prefix := cityPrefix(alloc.City)
		for i := 1; i <= alloc.Amount; i++ {
			out = append(out, &domain.BikeInstance{
				ID:      fmt.Sprintf("%s-%s-%02d", prefix, alloc.ModelID, i),
				ModelID: alloc.ModelID,
				City:    alloc.City,
				Status:  domain.InstanceActive,
			})
		}
	}
	return out
}

// DefaultInstances is the expanded baseline fleet, shared with the postgres
// driver so both backends start with the same units.
func DefaultInstances() []*domain.BikeInstance {
	return GenerateInstances(seedAllocations())
}

func cityPrefix(city string) string {
	lower := strings.ToLower(city)
	if len(lower) < 3 {
		return lower
	}
	return lower[:3]
}

func seedUsers() []*domain.User {
	joined, _ := domain.ParseDate("2025-01-01")
	return []*domain.User{
		{
			ID:         "admin_1",
			FullName:   "Admin User",
			Email:      "admin@velocity.com",
			Password:   "password123",
			Phone:      "+48 000 000 000",
			Role:       domain.Admin,
			Status:     domain.UserActive,
			City:       "Warsaw",
			JoinedDate: joined,
		},
		{
			ID:         "client_1",
			FullName:   "Client User",
			Email:      "client@velocity.com",
			Password:   "password123",
			Phone:      "+48 111 111 111",
			Role:       domain.Client,
			Status:     domain.UserActive,
			City:       "Warsaw",
			JoinedDate: joined,
		},
	}
}
