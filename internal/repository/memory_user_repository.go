package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"newshub/internal/domain"
)

// ErrUsernameTaken is returned when creating a user with an existing username.
var ErrUsernameTaken = errors.New("username already exists")

// MemoryUserRepository implements UserRepository in process memory.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}

	u := domain.User{
		ID:       uuid.New().String(),
		Username: in.Username,
		Password: in.Password,
	}
	r.users[u.ID] = u
	return &u, nil
}
