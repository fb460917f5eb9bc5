package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// GroupStore provides group-related database operations.
type GroupStore struct {
	db *gorm.DB
}

// NewGroupStore creates a new group store.
func NewGroupStore(db *gorm.DB) *GroupStore {
	return &GroupStore{db: db}
}

// Create creates a new group.
func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

// GetBySlug retrieves a group by slug.
func (s *GroupStore) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}
