package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/cache"
	"github.com/plumeio/plume/internal/follow"
	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
	"github.com/plumeio/plume/pkg/telemetry"
)

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// DefaultCacheTTL bounds how stale the cached global feed may get.
const DefaultCacheTTL = 20 * time.Second

// ErrInvalidPage is returned for page numbers below 1. Pages past the
// last valid page clamp to the last page instead.
var ErrInvalidPage = errors.New("invalid page number")

// PageInfo describes the position of a feed page within its scope.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Page is one page of a feed.
type Page struct {
	Posts []models.Post `json:"posts"`
	Info  PageInfo      `json:"info"`
}

// Engine builds ordered, paginated post listings. All feeds are ordered
// by created_at descending with id ascending on ties. The global feed is
// served through the timeline cache; the other kinds query the store on
// every request.
type Engine struct {
	posts    storage.PostStore
	groups   storage.GroupStore
	users    storage.UserStore
	follows  *follow.Manager
	cache    cache.Cache
	pageSize int
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewEngine creates a new feed engine. pageSize and cacheTTL fall back to
// the defaults when zero.
func NewEngine(
	posts storage.PostStore,
	groups storage.GroupStore,
	users storage.UserStore,
	follows *follow.Manager,
	timelineCache cache.Cache,
	pageSize int,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Engine{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		cache:    timelineCache,
		pageSize: pageSize,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Global returns one page of the global timeline. Pages are cached for
// the configured TTL, so records deleted after population stay visible
// until the TTL elapses or RefreshCache is called.
func (e *Engine) Global(ctx context.Context, page int) (*Page, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "feed.global")
	span.SetAttributes(attribute.Int("page", page))
	defer span.End()

	if page < 1 {
		return nil, ErrInvalidPage
	}

	key := fmt.Sprintf("feed:global:p%d", page)
	raw, err := e.cache.GetOrCompute(ctx, key, e.cacheTTL, func(ctx context.Context) ([]byte, error) {
		result, err := e.paginate(ctx, page, e.posts.ListPage)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	})
	if err != nil {
		return nil, err
	}

	var result Page
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached feed page: %w", err)
	}
	return &result, nil
}

// ByGroup returns one page of posts filed under the group with the given
// slug. Unknown slugs are a not-found error; posts of other groups or of
// no group never appear.
func (e *Engine) ByGroup(ctx context.Context, slug string, page int) (*Page, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "feed.by_group")
	span.SetAttributes(attribute.String("slug", slug), attribute.Int("page", page))
	defer span.End()

	if page < 1 {
		return nil, ErrInvalidPage
	}

	group, err := e.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}

	return e.paginate(ctx, page, func(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
		return e.posts.ListByGroup(ctx, group.ID, offset, limit)
	})
}

// ByAuthor returns one page of the author's posts.
func (e *Engine) ByAuthor(ctx context.Context, handle string, page int) (*Page, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "feed.by_author")
	span.SetAttributes(attribute.String("author", handle), attribute.Int("page", page))
	defer span.End()

	if page < 1 {
		return nil, ErrInvalidPage
	}

	author, err := e.users.GetByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", handle, err)
	}

	return e.paginate(ctx, page, func(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
		return e.posts.ListByAuthor(ctx, author.ID, offset, limit)
	})
}

// ByFollow returns one page of posts by the authors the requester
// follows. A requester following nobody gets an empty page, not an
// error. The feed is recomputed on every request.
func (e *Engine) ByFollow(ctx context.Context, requesterHandle string, page int) (*Page, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "feed.by_follow")
	span.SetAttributes(attribute.String("requester", requesterHandle), attribute.Int("page", page))
	defer span.End()

	if page < 1 {
		return nil, ErrInvalidPage
	}

	authorIDs, err := e.follows.FollowedAuthorIDs(ctx, requesterHandle)
	if err != nil {
		return nil, err
	}

	return e.paginate(ctx, page, func(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
		return e.posts.ListByAuthors(ctx, authorIDs, offset, limit)
	})
}

// RefreshCache drops the cached global feed, forcing recomputation on the
// next read.
func (e *Engine) RefreshCache(ctx context.Context) error {
	if err := e.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear timeline cache: %w", err)
	}
	e.logger.Debug("Timeline cache cleared")
	return nil
}

type pageQuery func(ctx context.Context, offset, limit int) ([]models.Post, int64, error)

// paginate runs query for the requested page. Pages past the end clamp
// to the last valid page; an empty scope yields one empty page.
func (e *Engine) paginate(ctx context.Context, page int, query pageQuery) (*Page, error) {
	posts, total, err := query(ctx, (page-1)*e.pageSize, e.pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(e.pageSize) - 1) / int64(e.pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if len(posts) == 0 && page > totalPages {
		page = totalPages
		posts, total, err = query(ctx, (page-1)*e.pageSize, e.pageSize)
		if err != nil {
			return nil, err
		}
	}

	return &Page{
		Posts: posts,
		Info: PageInfo{
			Page:       page,
			PageSize:   e.pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}
