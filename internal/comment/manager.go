package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// ErrEmptyText is returned when a comment has no text.
var ErrEmptyText = errors.New("comment text must not be empty")

// Manager appends comments to posts. Comments are immutable once created;
// there is no edit or moderation path.
type Manager struct {
	users    storage.UserStore
	posts    storage.PostStore
	comments storage.CommentStore
	logger   *zap.Logger
}

// NewManager creates a new comment manager.
func NewManager(users storage.UserStore, posts storage.PostStore, comments storage.CommentStore, logger *zap.Logger) *Manager {
	return &Manager{
		users:    users,
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

// Add appends a comment to the post. The author is the authenticated
// requester from ctx; anonymous callers are rejected before anything is
// persisted.
func (m *Manager) Add(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	handle, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	author, err := m.users.GetByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", handle, err)
	}

	post, err := m.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	comment := &models.Comment{
		PostID:    post.ID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	m.logger.Debug("Comment added",
		zap.Int64("post_id", post.ID),
		zap.String("author", handle))

	return comment, nil
}

// ListByPost returns the comments on a post, oldest first.
func (m *Manager) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := m.posts.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}
	return m.comments.ListByPost(ctx, postID)
}
