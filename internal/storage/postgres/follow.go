package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plumeio/plume/internal/models"
)

// FollowStore provides follow-edge database operations.
type FollowStore struct {
	db *gorm.DB
}

// NewFollowStore creates a new follow store.
func NewFollowStore(db *gorm.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Create inserts the edge if absent. The ON CONFLICT DO NOTHING clause on
// the composite primary key makes concurrent inserts of the same pair safe.
func (s *FollowStore) Create(ctx context.Context, follow *models.Follow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
}

// Delete removes the edge if present. Deleting a missing edge is a no-op.
func (s *FollowStore) Delete(ctx context.Context, userID, authorID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether the edge is present.
func (s *FollowStore) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	count, err := s.CountEdges(ctx, userID, authorID)
	return count > 0, err
}

// CountEdges returns the number of edges for the pair.
func (s *FollowStore) CountEdges(ctx context.Context, userID, authorID int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAuthorIDs returns the ids of the authors the user follows.
func (s *FollowStore) ListAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Order("author_id ASC").
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
