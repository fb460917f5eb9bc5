package storage

import (
	"context"
	"errors"

	"github.com/plumeio/plume/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore provides access to user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// GroupStore provides access to group records.
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
}

// PostStore provides access to post records. The List* methods are the
// typed feed queries: each returns one page of posts ordered by
// created_at descending with id ascending as the tiebreak, plus the total
// number of posts in the scope.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	CreateBatch(ctx context.Context, posts []*models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)

	ListPage(ctx context.Context, offset, limit int) ([]models.Post, int64, error)
	ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]models.Post, int64, error)
	ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, int64, error)
}

// CommentStore provides access to comment records.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Count(ctx context.Context) (int64, error)
}

// FollowStore provides access to follow edges. Create is an atomic
// insert-if-absent: inserting an existing edge succeeds without creating
// a duplicate. Delete of a missing edge is not an error.
type FollowStore interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, userID, authorID int64) error
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	CountEdges(ctx context.Context, userID, authorID int64) (int64, error)
	ListAuthorIDs(ctx context.Context, userID int64) ([]int64, error)
}
