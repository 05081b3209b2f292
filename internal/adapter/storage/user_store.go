package storage

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// UserStore implements ports.UserRepository. A missing or corrupt users file
// is replaced with the two demo accounts so login always works.
type UserStore struct {
	store *FileStore
}

func NewUserStore(store *FileStore) (*UserStore, error) {
	u := &UserStore{store: store}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	var users []*domain.User
	if err := u.store.read(usersKey, &users); errors.Is(err, fs.ErrNotExist) || len(users) == 0 {
		if err := u.store.write(usersKey, seedUsers()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UserStore) loadLocked() ([]*domain.User, error) {
	var users []*domain.User
	if err := u.store.read(usersKey, &users); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return seedUsers(), nil
		}
		return nil, err
	}
	return users, nil
}

func (u *UserStore) CreateUser(ctx context.Context, user *domain.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	users, err := u.loadLocked()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ConflictError{Resource: "user", Msg: "email is already registered"}
		}
	}
	users = append(users, user)
	return u.store.write(usersKey, users)
}

func (u *UserStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	users, err := u.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "user", ID: id}
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	users, err := u.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			found := *user
			return &found, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "user"}
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return u.loadLocked()
}

func (u *UserStore) UpdateUser(ctx context.Context, user *domain.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	users, err := u.loadLocked()
	if err != nil {
		return err
	}
	for i, existing := range users {
		if existing.ID == user.ID {
			updated := *user
			users[i] = &updated
			return u.store.write(usersKey, users)
		}
	}
	return domain.NotFoundError{Resource: "user", ID: user.ID}
}
