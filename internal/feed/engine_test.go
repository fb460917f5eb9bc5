package feed

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/cache"
	"github.com/plumeio/plume/internal/follow"
	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
	"github.com/plumeio/plume/internal/storage/memory"
)

type fixture struct {
	users   *memory.UserStore
	groups  *memory.GroupStore
	posts   *memory.PostStore
	follows *follow.Manager
	engine  *Engine
	now     time.Time
	clock   *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:  memory.NewUserStore(),
		groups: memory.NewGroupStore(),
		posts:  memory.NewPostStore(),
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.clock = &f.now

	followStore := memory.NewFollowStore()
	f.follows = follow.NewManager(f.users, followStore, zap.NewNop())

	timelineCache := cache.NewMemory(cache.WithClock(func() time.Time { return *f.clock }))
	f.engine = NewEngine(f.posts, f.groups, f.users, f.follows, timelineCache,
		DefaultPageSize, DefaultCacheTTL, zap.NewNop())
	return f
}

func (f *fixture) addUser(t *testing.T, handle string) *models.User {
	t.Helper()
	u := &models.User{Handle: handle}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: title, Slug: slug, Description: "test group"}
	require.NoError(t, f.groups.Create(context.Background(), g))
	return g
}

func (f *fixture) addPost(t *testing.T, author *models.User, group *models.Group, text string, created time.Time) *models.Post {
	t.Helper()
	p := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: created,
	}
	if group != nil {
		p.GroupID = sql.NullInt64{Int64: group.ID, Valid: true}
	}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}

func texts(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Text)
	}
	return out
}

func TestFeedOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")

	f.addPost(t, kat, nil, "oldest", f.now.Add(-3*time.Hour))
	f.addPost(t, kat, nil, "middle", f.now.Add(-2*time.Hour))
	f.addPost(t, kat, nil, "newest", f.now.Add(-1*time.Hour))

	page, err := f.engine.ByAuthor(ctx, "kat", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "middle", "oldest"}, texts(page.Posts))
}

func TestFeedOrderingTiebreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")

	// Same timestamp: id ascending decides
	created := f.now.Add(-time.Hour)
	f.addPost(t, kat, nil, "first", created)
	f.addPost(t, kat, nil, "second", created)
	f.addPost(t, kat, nil, "third", created)

	page, err := f.engine.ByAuthor(ctx, "kat", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, texts(page.Posts))
}

func TestGroupFeedIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")
	g1 := f.addGroup(t, "Group One", "group-one")
	g2 := f.addGroup(t, "Group Two", "group-two")

	f.addPost(t, kat, g1, "in group one", f.now.Add(-3*time.Hour))
	f.addPost(t, kat, g2, "in group two", f.now.Add(-2*time.Hour))
	f.addPost(t, kat, nil, "no group", f.now.Add(-1*time.Hour))

	page, err := f.engine.ByGroup(ctx, "group-one", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"in group one"}, texts(page.Posts))

	page, err = f.engine.ByGroup(ctx, "group-two", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"in group two"}, texts(page.Posts))

	_, err = f.engine.ByGroup(ctx, "no-such-group", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")
	g := f.addGroup(t, "Group", "test-slug")

	// 13 posts with identical timestamps, as a bulk insert would produce
	created := f.now.Add(-time.Hour)
	for i := 0; i < 13; i++ {
		f.addPost(t, kat, g, "post", created)
	}

	kinds := map[string]func(page int) (*Page, error){
		"global": func(page int) (*Page, error) { return f.engine.Global(ctx, page) },
		"group":  func(page int) (*Page, error) { return f.engine.ByGroup(ctx, "test-slug", page) },
		"author": func(page int) (*Page, error) { return f.engine.ByAuthor(ctx, "kat", page) },
	}

	for name, get := range kinds {
		t.Run(name, func(t *testing.T) {
			first, err := get(1)
			require.NoError(t, err)
			require.Len(t, first.Posts, 10)
			require.Equal(t, 1, first.Info.Page)
			require.Equal(t, int64(13), first.Info.TotalItems)
			require.Equal(t, 2, first.Info.TotalPages)

			second, err := get(2)
			require.NoError(t, err)
			require.Len(t, second.Posts, 3)
			require.Equal(t, 2, second.Info.Page)
		})
	}
}

func TestPageClampAndInvalidPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")

	created := f.now.Add(-time.Hour)
	for i := 0; i < 13; i++ {
		f.addPost(t, kat, nil, "post", created)
	}

	// A page past the end clamps to the last valid page
	page, err := f.engine.ByAuthor(ctx, "kat", 99)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	require.Equal(t, 2, page.Info.Page)

	_, err = f.engine.ByAuthor(ctx, "kat", 0)
	require.ErrorIs(t, err, ErrInvalidPage)

	_, err = f.engine.Global(ctx, -1)
	require.ErrorIs(t, err, ErrInvalidPage)
}

func TestFollowFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "kat")
	f.addUser(t, "kit")
	kut := f.addUser(t, "kut")

	// kit follows kut; nobody has posted yet
	require.NoError(t, f.follows.Follow(ctx, "kit", "kut"))

	page, err := f.engine.ByFollow(ctx, "kit", 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts)

	page, err = f.engine.ByFollow(ctx, "kat", 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts, "feed of a user following nobody is empty")

	f.addPost(t, kut, nil, "from kut", f.now.Add(-time.Hour))

	page, err = f.engine.ByFollow(ctx, "kit", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"from kut"}, texts(page.Posts))

	page, err = f.engine.ByFollow(ctx, "kat", 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts, "unrelated user's feed stays empty")
}

func TestFollowFeedUnknownRequester(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.ByFollow(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGlobalFeedCacheStaleness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")

	p := f.addPost(t, kat, nil, "cached away", f.now.Add(-time.Hour))

	// Populate the cache, then delete the post underneath it
	page, err := f.engine.Global(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"cached away"}, texts(page.Posts))

	require.NoError(t, f.posts.Delete(ctx, p.ID))

	page, err = f.engine.Global(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"cached away"}, texts(page.Posts),
		"deleted post stays visible until the cache is cleared")

	require.NoError(t, f.engine.RefreshCache(ctx))

	page, err = f.engine.Global(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts, "cleared cache reflects the deletion")
}

func TestGlobalFeedCacheExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")

	p := f.addPost(t, kat, nil, "short lived", f.now.Add(-time.Hour))

	_, err := f.engine.Global(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, p.ID))

	// Still cached before the TTL elapses
	page, err := f.engine.Global(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	f.now = f.now.Add(DefaultCacheTTL + time.Second)

	page, err = f.engine.Global(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts, "expired cache reflects the deletion")
}

func TestGroupAndAuthorScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kat := f.addUser(t, "kat")
	f.addUser(t, "kit")
	g := f.addGroup(t, "Group", "test-slug")
	f.addGroup(t, "Other", "other-slug")

	p := f.addPost(t, kat, g, "the post", f.now.Add(-time.Hour))

	page, err := f.engine.ByGroup(ctx, "test-slug", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, p.ID, page.Posts[0].ID)

	page, err = f.engine.ByGroup(ctx, "other-slug", 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts)

	page, err = f.engine.ByAuthor(ctx, "kat", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, p.ID, page.Posts[0].ID)

	page, err = f.engine.ByAuthor(ctx, "kit", 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts)

	_, err = f.engine.ByAuthor(ctx, "ghost", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
