package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation books one bike instance for an inclusive date range.
// TotalCost is fixed at creation and never recomputed, even on cancellation.
type Reservation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId" validate:"required"`
	BikeID    string            `json:"bikeId" validate:"required"`
	StartDate Date              `json:"startDate"`
	EndDate   Date              `json:"endDate"`
	TotalCost int               `json:"totalCost" validate:"min=0"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Blocks reports whether the reservation makes its bike unavailable for the
// requested range. Cancelled reservations never block.
func (r *Reservation) Blocks(start, end Date) bool {
	if r.Status == ReservationCancelled {
		return false
	}
	return RangesOverlap(start, end, r.StartDate, r.EndDate)
}

// Expired reports whether a confirmed trip is over: the end date is strictly
// before today, time of day ignored.
func (r *Reservation) Expired(today Date) bool {
	return r.Status == ReservationConfirmed && r.EndDate.Before(today)
}

// PromoteExpired returns a copy of rs where every confirmed reservation whose
// end date has passed is marked completed, plus whether anything changed.
// Input records are never mutated; callers decide whether to persist.
func PromoteExpired(rs []*Reservation, today Date) ([]*Reservation, bool) {
	changed := false
	out := make([]*Reservation, len(rs))
	for i, r := range rs {
		if r.Expired(today) {
			promoted := *r
			promoted.Status = ReservationCompleted
			out[i] = &promoted
			changed = true
			continue
		}
		out[i] = r
	}
	return out, changed
}
