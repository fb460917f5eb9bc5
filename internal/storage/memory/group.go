package memory

import (
	"context"
	"sync"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// GroupStore is an in-memory group store.
type GroupStore struct {
	mu     sync.RWMutex
	groups map[int64]*models.Group
	nextID int64
}

// NewGroupStore creates a new in-memory group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{
		groups: make(map[int64]*models.Group),
		nextID: 1,
	}
}

// Create creates a new group.
func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group.ID = s.nextID
	s.nextID++

	cp := *group
	s.groups[group.ID] = &cp
	return nil
}

// GetBySlug retrieves a group by slug.
func (s *GroupStore) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}
