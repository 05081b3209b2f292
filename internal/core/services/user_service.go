package services

import (
	"context"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserService covers registration, login checks, profile edits and the admin
// block/unblock toggle. Users are never hard-deleted.
type UserService struct {
	userRepo ports.UserRepository
	clock    ports.Clock
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewUserService(
	userRepo ports.UserRepository,
	clock ports.Clock,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		clock:    clock,
		logger:   logger,
		validate: validate,
	}
}

// Register creates a client account. Email addresses are unique across the
// collection. The password is stored as-is, matching the mock store this
// service replaces.
func (s *UserService) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.ID = uuid.NewString()
	user.Role = domain.Client
	user.Status = domain.UserActive
	user.JoinedDate = s.clock.Today()

	if err := s.validate.Struct(user); err != nil {
		return nil, domain.ValidationError{Field: "user", Msg: err.Error()}
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, user.Email); err == nil {
		return nil, domain.ConflictError{Resource: "user", Msg: "email is already registered"}
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"city":    user.City,
	})
	return user, nil
}

// Login verifies credentials and account status. Both unknown emails and
// wrong passwords produce the same rejection.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ValidationError{Field: "credentials", Msg: "invalid email or password"}
		}
		return nil, err
	}
	if user.Password != password {
		return nil, domain.ValidationError{Field: "credentials", Msg: "invalid email or password"}
	}
	if user.Status == domain.UserBlocked {
		return nil, domain.ValidationError{Field: "status", Msg: "account is blocked"}
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	City     *string
	Password *string
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	if err := s.validate.Struct(user); err != nil {
		return nil, domain.ValidationError{Field: "user", Msg: err.Error()}
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", map[string]interface{}{
		"user_id": id,
	})
	return user, nil
}

// SetUserStatus blocks or unblocks an account. Blocked users fail login and
// cannot create reservations; their history is kept.
func (s *UserService) SetUserStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	if status != domain.UserActive && status != domain.UserBlocked {
		return nil, domain.ValidationError{Field: "status", Msg: "status must be active or blocked"}
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User status changed", map[string]interface{}{
		"user_id": id,
		"status":  string(status),
	})
	return user, nil
}
