package domain

import "github.com/google/uuid"

type UserRole string

const (
	Admin  UserRole = "admin"
	Client UserRole = "client"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// User is a registered customer or administrator. Users are blocked rather
// than deleted so their reservation history stays intact.
//
// Passwords are stored in plaintext. This mirrors the mock store the service
// replaces and is a known, accepted weakness of the demo data set.
type User struct {
	ID         string     `json:"id"`
	FullName   string     `json:"fullName" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	Phone      string     `json:"phone"`
	Role       UserRole   `json:"role"`
	Status     UserStatus `json:"status"`
	City       string     `json:"city" validate:"required"`
	JoinedDate Date       `json:"joinedDate"`
}

type TokenPayload struct {
	ID     uuid.UUID
	UserID string
	Role   UserRole
}
