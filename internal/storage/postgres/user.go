package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// UserStore provides user-related database operations.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new user store.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create creates a new user.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// GetByHandle retrieves a user by handle.
func (s *UserStore) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
