package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// ErrEmptyText is returned when a post has no text.
var ErrEmptyText = errors.New("post text must not be empty")

// Service owns the post lifecycle. Only the author may edit or delete a
// post; created_at is fixed at creation and survives edits.
type Service struct {
	users  storage.UserStore
	groups storage.GroupStore
	posts  storage.PostStore
	logger *zap.Logger
}

// NewService creates a new post service.
func NewService(users storage.UserStore, groups storage.GroupStore, posts storage.PostStore, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		groups: groups,
		posts:  posts,
		logger: logger,
	}
}

// Create publishes a post for the authenticated requester. groupSlug and
// image are optional; an empty groupSlug files the post under no group.
func (s *Service) Create(ctx context.Context, text, groupSlug, image string) (*models.Post, error) {
	handle, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	author, err := s.users.GetByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", handle, err)
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		GroupID:   groupID,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Debug("Post created",
		zap.Int64("post_id", post.ID),
		zap.String("author", handle))

	return post, nil
}

// Get retrieves a post by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Edit updates a post's text, group, and image. The requester must be the
// author; created_at never changes.
func (s *Service) Edit(ctx context.Context, id int64, text, groupSlug, image string) (*models.Post, error) {
	post, err := s.authorized(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	post.Image = image
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post. The requester must be the author.
func (s *Service) Delete(ctx context.Context, id int64) error {
	post, err := s.authorized(ctx, id)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Debug("Post deleted", zap.Int64("post_id", post.ID))
	return nil
}

// authorized loads the post and verifies the requester is its author.
func (s *Service) authorized(ctx context.Context, id int64) (*models.Post, error) {
	handle, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}

	requester, err := s.users.GetByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("requester %q: %w", handle, err)
	}

	if post.AuthorID != requester.ID {
		return nil, auth.ErrForbidden
	}
	return post, nil
}

func (s *Service) resolveGroup(ctx context.Context, slug string) (sql.NullInt64, error) {
	if slug == "" {
		return sql.NullInt64{}, nil
	}
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("group %q: %w", slug, err)
	}
	return sql.NullInt64{Int64: group.ID, Valid: true}, nil
}
