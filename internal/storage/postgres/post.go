package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// feedOrder is the ordering shared by every feed query: newest first,
// id ascending as the deterministic tiebreak.
const feedOrder = "created_at DESC, id ASC"

// PostStore provides post-related database operations.
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a new post store.
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create creates a new post.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// CreateBatch creates multiple posts in one insert.
func (s *PostStore) CreateBatch(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(posts).Error
}

// GetByID retrieves a post by ID.
func (s *PostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update updates a post. created_at is never touched.
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	result := s.db.WithContext(ctx).Model(post).
		Omit("created_at").
		Select("text", "group_id", "image").
		Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the total number of posts.
func (s *PostStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListPage returns one page of all posts plus the total count.
func (s *PostStore) ListPage(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
	return s.listPage(ctx, s.db.WithContext(ctx).Model(&models.Post{}), offset, limit)
}

// ListByGroup returns one page of posts filed under the given group.
func (s *PostStore) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return s.listPage(ctx, query, offset, limit)
}

// ListByAuthor returns one page of posts by the given author.
func (s *PostStore) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]models.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return s.listPage(ctx, query, offset, limit)
}

// ListByAuthors returns one page of posts by any of the given authors.
func (s *PostStore) ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN ?", authorIDs)
	return s.listPage(ctx, query, offset, limit)
}

func (s *PostStore) listPage(ctx context.Context, query *gorm.DB, offset, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	if err := query.Session(&gorm.Session{}).
		Order(feedOrder).Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
