package follow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// ErrSelfFollow is returned when a user attempts to follow themselves.
// Self-edges would make the follow feed echo the user's own posts, so
// they are rejected rather than silently allowed.
var ErrSelfFollow = errors.New("cannot follow yourself")

// Manager maintains the follow graph. All operations are idempotent:
// following twice leaves one edge, unfollowing a missing edge is a no-op.
type Manager struct {
	users   storage.UserStore
	follows storage.FollowStore
	logger  *zap.Logger
}

// NewManager creates a new follow graph manager.
func NewManager(users storage.UserStore, follows storage.FollowStore, logger *zap.Logger) *Manager {
	return &Manager{
		users:   users,
		follows: follows,
		logger:  logger,
	}
}

// Follow creates the edge user -> author if absent. A repeated call
// succeeds without creating a duplicate.
func (m *Manager) Follow(ctx context.Context, userHandle, authorHandle string) error {
	if userHandle == authorHandle {
		return ErrSelfFollow
	}

	user, author, err := m.resolvePair(ctx, userHandle, authorHandle)
	if err != nil {
		return err
	}

	edge := &models.Follow{
		UserID:    user.ID,
		AuthorID:  author.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.follows.Create(ctx, edge); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	m.logger.Debug("Processed follow",
		zap.String("user", userHandle),
		zap.String("author", authorHandle))

	return nil
}

// Unfollow removes the edge user -> author if present.
func (m *Manager) Unfollow(ctx context.Context, userHandle, authorHandle string) error {
	user, author, err := m.resolvePair(ctx, userHandle, authorHandle)
	if err != nil {
		return err
	}

	if err := m.follows.Delete(ctx, user.ID, author.ID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	m.logger.Debug("Processed unfollow",
		zap.String("user", userHandle),
		zap.String("author", authorHandle))

	return nil
}

// IsFollowing reports whether the edge user -> author exists.
func (m *Manager) IsFollowing(ctx context.Context, userHandle, authorHandle string) (bool, error) {
	user, author, err := m.resolvePair(ctx, userHandle, authorHandle)
	if err != nil {
		return false, err
	}
	return m.follows.Exists(ctx, user.ID, author.ID)
}

// FollowedAuthorIDs returns the ids of the authors the user follows.
func (m *Manager) FollowedAuthorIDs(ctx context.Context, userHandle string) ([]int64, error) {
	user, err := m.users.GetByHandle(ctx, userHandle)
	if err != nil {
		return nil, fmt.Errorf("follower %q: %w", userHandle, err)
	}
	return m.follows.ListAuthorIDs(ctx, user.ID)
}

// FollowedAuthors returns the handles of the authors the user follows.
func (m *Manager) FollowedAuthors(ctx context.Context, userHandle string) ([]string, error) {
	ids, err := m.FollowedAuthorIDs(ctx, userHandle)
	if err != nil {
		return nil, err
	}

	handles := make([]string, 0, len(ids))
	for _, id := range ids {
		author, err := m.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("author id %d: %w", id, err)
		}
		handles = append(handles, author.Handle)
	}
	return handles, nil
}

func (m *Manager) resolvePair(ctx context.Context, userHandle, authorHandle string) (*models.User, *models.User, error) {
	user, err := m.users.GetByHandle(ctx, userHandle)
	if err != nil {
		return nil, nil, fmt.Errorf("follower %q: %w", userHandle, err)
	}
	author, err := m.users.GetByHandle(ctx, authorHandle)
	if err != nil {
		return nil, nil, fmt.Errorf("author %q: %w", authorHandle, err)
	}
	return user, author, nil
}
