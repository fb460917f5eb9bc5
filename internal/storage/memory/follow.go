package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plumeio/plume/internal/models"
)

type followKey struct {
	userID   int64
	authorID int64
}

// FollowStore is an in-memory follow-edge store. The map key doubles as
// the uniqueness constraint, so Create is naturally insert-if-absent.
type FollowStore struct {
	mu    sync.RWMutex
	edges map[followKey]*models.Follow
}

// NewFollowStore creates a new in-memory follow store.
func NewFollowStore() *FollowStore {
	return &FollowStore{
		edges: make(map[followKey]*models.Follow),
	}
}

// Create inserts the edge if absent. Inserting an existing edge succeeds
// without modifying it.
func (s *FollowStore) Create(ctx context.Context, follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: follow.UserID, authorID: follow.AuthorID}
	if _, ok := s.edges[key]; ok {
		return nil
	}
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now().UTC()
	}

	cp := *follow
	s.edges[key] = &cp
	return nil
}

// Delete removes the edge if present. Deleting a missing edge is a no-op.
func (s *FollowStore) Delete(ctx context.Context, userID, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, followKey{userID: userID, authorID: authorID})
	return nil
}

// Exists reports whether the edge is present.
func (s *FollowStore) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[followKey{userID: userID, authorID: authorID}]
	return ok, nil
}

// CountEdges returns the number of edges for the pair. With the map-backed
// constraint this is always 0 or 1.
func (s *FollowStore) CountEdges(ctx context.Context, userID, authorID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.edges[followKey{userID: userID, authorID: authorID}]; ok {
		return 1, nil
	}
	return 0, nil
}

// ListAuthorIDs returns the ids of the authors the user follows.
func (s *FollowStore) ListAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []int64
	for key := range s.edges {
		if key.userID == userID {
			out = append(out, key.authorID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
