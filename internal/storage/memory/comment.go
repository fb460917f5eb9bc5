package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plumeio/plume/internal/models"
)

// CommentStore is an in-memory comment store.
type CommentStore struct {
	mu       sync.RWMutex
	comments map[int64]*models.Comment
	nextID   int64
}

// NewCommentStore creates a new in-memory comment store.
func NewCommentStore() *CommentStore {
	return &CommentStore{
		comments: make(map[int64]*models.Comment),
		nextID:   1,
	}
}

// Create creates a new comment.
func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID
	s.nextID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

// ListByPost returns the comments on a post, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count returns the total number of comments.
func (s *CommentStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.comments)), nil
}
