package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

type FleetRepository struct {
	db *sql.DB
}

func NewFleetRepository(db *sql.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) ListModels(ctx context.Context) ([]*domain.BikeModel, error) {
	query := `SELECT id, name, category, description, speed, range_km, capacity_kg, image_emoji
		FROM bike_models ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.BikeModel
	for rows.Next() {
		model := &domain.BikeModel{}
		err := rows.Scan(
			&model.ID,
			&model.Name,
			&model.Category,
			&model.Description,
			&model.Stats.Speed,
			&model.Stats.Range,
			&model.Stats.Capacity,
			&model.ImageEmoji,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FleetRepository) GetModelByID(ctx context.Context, id string) (*domain.BikeModel, error) {
	query := `SELECT id, name, category, description, speed, range_km, capacity_kg, image_emoji
		FROM bike_models WHERE id = $1`

	model := &domain.BikeModel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&model.ID,
		&model.Name,
		&model.Category,
		&model.Description,
		&model.Stats.Speed,
		&model.Stats.Range,
		&model.Stats.Capacity,
		&model.ImageEmoji,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundError{Resource: "bike model", ID: id}
		}
		return nil, fmt.Errorf("failed to get bike model: %w", err)
	}
	return model, nil
}

func (r *FleetRepository) ListInstances(ctx context.Context) ([]*domain.BikeInstance, error) {
	query := `SELECT id, model_id, city, status FROM bike_instances ORDER BY id`
	return r.queryInstances(ctx, query)
}

func (r *FleetRepository) ListInstancesByCity(ctx context.Context, city string) ([]*domain.BikeInstance, error) {
	query := `SELECT id, model_id, city, status FROM bike_instances WHERE city = $1 ORDER BY id`
	return r.queryInstances(ctx, query, city)
}

func (r *FleetRepository) UpdateInstance(ctx context.Context, instance *domain.BikeInstance) error {
	query := `UPDATE bike_instances SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, instance.Status, instance.ID)
	if err != nil {
		return fmt.Errorf("failed to update bike instance: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NotFoundError{Resource: "bike instance", ID: instance.ID}
	}
	return nil
}

// SeedInstances inserts generated fleet units on first run. Existing ids are
// left untouched so re-running is safe.
func (r *FleetRepository) SeedInstances(ctx context.Context, instances []*domain.BikeInstance) error {
	query := `INSERT INTO bike_instances (id, model_id, city, status)
		VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`

	for _, instance := range instances {
		if _, err := r.db.ExecContext(ctx, query, instance.ID, instance.ModelID, instance.City, instance.Status); err != nil {
			return fmt.Errorf("failed to seed bike instance %s: %w", instance.ID, err)
		}
	}
	return nil
}

func (r *FleetRepository) queryInstances(ctx context.Context, query string, args ...interface{}) ([]*domain.BikeInstance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.BikeInstance
	for rows.Next() {
		instance := &domain.BikeInstance{}
		var status string
		if err := rows.Scan(&instance.ID, &instance.ModelID, &instance.City, &status); err != nil {
			return nil, err
		}
		instance.Status = domain.InstanceStatus(status)
		out = append(out, instance)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
