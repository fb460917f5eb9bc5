package memory

import (
	"context"
	"sync"
	"time"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// UserStore is an in-memory user store. It mirrors the postgres
// implementation's semantics and is used by unit tests and local runs.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	nextID int64
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[int64]*models.User),
		nextID: 1,
	}
}

// Create creates a new user.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// GetByHandle retrieves a user by handle.
func (s *UserStore) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Handle == handle {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
