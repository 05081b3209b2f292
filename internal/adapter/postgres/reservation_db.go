package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"

	"github.com/lib/pq"
)

// ReservationRepository is the transactional driver. The schema carries an
// exclusion constraint on (bike_id, daterange(start_date, end_date, '[]'))
// for non-cancelled rows, so the no-overlap invariant holds even across
// concurrent writers; a violation surfaces as domain.ConflictError.
type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `INSERT INTO reservations (id, user_id, bike_id, start_date, end_date, total_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.BikeID,
		reservation.StartDate.Time(),
		reservation.EndDate.Time(),
		reservation.TotalCost,
		reservation.Status,
		reservation.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23P01": // exclusion_violation: overlapping non-cancelled booking
				return domain.ConflictError{Resource: "reservation", Msg: "bike already booked for an overlapping range"}
			case "23505":
				return domain.ConflictError{Resource: "reservation", Msg: "duplicate reservation id"}
			case "23503":
				return domain.NotFoundError{Resource: "bike instance", ID: reservation.BikeID}
			}
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT id, user_id, bike_id, start_date, end_date, total_cost, status, created_at
		FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundError{Resource: "reservation", ID: id}
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	query := `SELECT id, user_id, bike_id, start_date, end_date, total_cost, status, created_at
		FROM reservations ORDER BY start_date`
	return r.queryReservations(ctx, query)
}

func (r *ReservationRepository) ListReservationsByBikeID(ctx context.Context, bikeID string) ([]*domain.Reservation, error) {
	query := `SELECT id, user_id, bike_id, start_date, end_date, total_cost, status, created_at
		FROM reservations WHERE bike_id = $1 ORDER BY start_date`
	return r.queryReservations(ctx, query, bikeID)
}

func (r *ReservationRepository) ListReservationsByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	query := `SELECT id, user_id, bike_id, start_date, end_date, total_cost, status, created_at
		FROM reservations WHERE user_id = $1 ORDER BY start_date DESC`
	return r.queryReservations(ctx, query, userID)
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `UPDATE reservations
		SET end_date = $1, status = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query,
		reservation.EndDate.Time(),
		reservation.Status,
		reservation.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23P01" {
			return domain.ConflictError{Resource: "reservation", Msg: "new range collides with another reservation"}
		}
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NotFoundError{Resource: "reservation", ID: reservation.ID}
	}
	return nil
}

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		start, end  time.Time
		status      string
	)
	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.BikeID,
		&start,
		&end,
		&reservation.TotalCost,
		&status,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	reservation.StartDate = domain.DateOf(start)
	reservation.EndDate = domain.DateOf(end)
	reservation.Status = domain.ReservationStatus(status)
	return &reservation, nil
}
