package domain

type BikeStats struct {
	Speed    int `json:"speed"`
	Range    int `json:"range"`
	Capacity int `json:"capacity"`
}

// BikeModel is immutable catalog data: the blueprint many physical instances
// point back to.
type BikeModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Stats       BikeStats `json:"stats"`
	ImageEmoji  string    `json:"imageEmoji"`
}

type InstanceStatus string

const (
	InstanceActive      InstanceStatus = "active"
	InstanceMaintenance InstanceStatus = "maintenance"
	InstanceRented      InstanceStatus = "rented"
)

// BikeInstance is one physical, bookable unit of a model at a city hub.
// City and model assignment are fixed for the instance lifetime.
type BikeInstance struct {
	ID      string         `json:"id"` // e.g. "war-s1-01"
	ModelID string         `json:"modelId"`
	City    string         `json:"city"`
	Status  InstanceStatus `json:"status"`
}

// FleetAllocation is one row of the provisioning table instances are
// generated from on first run.
type FleetAllocation struct {
	ModelID string
	City    string
	Amount  int
}
