package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"

	"github.com/lib/pq"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, full_name, email, password, phone, role, status, city, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.Password,
		user.Phone,
		user.Role,
		user.Status,
		user.City,
		user.JoinedDate.Time(),
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ConflictError{Resource: "user", Msg: "email is already registered"}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := userSelect + ` WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundError{Resource: "user", ID: id}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userSelect + ` WHERE lower(email) = lower($1)`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundError{Resource: "user"}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+` ORDER BY joined_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
		SET full_name = $1, password = $2, phone = $3, status = $4, city = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.FullName,
		user.Password,
		user.Phone,
		user.Status,
		user.City,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NotFoundError{Resource: "user", ID: user.ID}
	}
	return nil
}

const userSelect = `SELECT id, full_name, email, password, phone, role, status, city, joined_date FROM users`

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user         domain.User
		role, status string
		joined       time.Time
	)
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Password,
		&user.Phone,
		&role,
		&status,
		&user.City,
		&joined,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.UserRole(role)
	user.Status = domain.UserStatus(status)
	user.JoinedDate = domain.DateOf(joined)
	return &user, nil
}
