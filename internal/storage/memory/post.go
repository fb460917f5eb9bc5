package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
)

// PostStore is an in-memory post store. Feed queries preserve the same
// ordering as the postgres implementation: created_at descending, id
// ascending on ties.
type PostStore struct {
	mu     sync.RWMutex
	posts  map[int64]*models.Post
	nextID int64
}

// NewPostStore creates a new in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{
		posts:  make(map[int64]*models.Post),
		nextID: 1,
	}
}

// Create creates a new post.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(post)
	return nil
}

// CreateBatch creates multiple posts in one call.
func (s *PostStore) CreateBatch(ctx context.Context, posts []*models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range posts {
		s.insertLocked(p)
	}
	return nil
}

func (s *PostStore) insertLocked(post *models.Post) {
	post.ID = s.nextID
	s.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	cp := *post
	s.posts[post.ID] = &cp
}

// GetByID retrieves a post by ID.
func (s *PostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Update updates a post. CreatedAt is preserved from the stored record.
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return storage.ErrNotFound
	}
	post.CreatedAt = existing.CreatedAt

	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

// Count returns the total number of posts.
func (s *PostStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.posts)), nil
}

// ListPage returns one page of all posts plus the total count.
func (s *PostStore) ListPage(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
	return s.list(func(p *models.Post) bool { return true }, offset, limit)
}

// ListByGroup returns one page of posts filed under the given group.
func (s *PostStore) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, int64, error) {
	return s.list(func(p *models.Post) bool {
		return p.GroupID.Valid && p.GroupID.Int64 == groupID
	}, offset, limit)
}

// ListByAuthor returns one page of posts by the given author.
func (s *PostStore) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]models.Post, int64, error) {
	return s.list(func(p *models.Post) bool { return p.AuthorID == authorID }, offset, limit)
}

// ListByAuthors returns one page of posts by any of the given authors.
func (s *PostStore) ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}
	set := make(map[int64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = struct{}{}
	}
	return s.list(func(p *models.Post) bool {
		_, ok := set[p.AuthorID]
		return ok
	}, offset, limit)
}

func (s *PostStore) list(match func(*models.Post) bool, offset, limit int) ([]models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Post
	for _, p := range s.posts {
		if match(p) {
			all = append(all, *p)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]models.Post, end-offset)
	copy(page, all[offset:end])
	return page, total, nil
}
