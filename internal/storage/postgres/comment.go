package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/plumeio/plume/internal/models"
)

// CommentStore provides comment-related database operations.
type CommentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a new comment store.
func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create creates a new comment.
func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// ListByPost returns the comments on a post, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the total number of comments.
func (s *CommentStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
