package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/models"
	"github.com/plumeio/plume/internal/storage"
	"github.com/plumeio/plume/internal/storage/memory"
)

func newTestService(t *testing.T, handles ...string) (*Service, *memory.PostStore, *memory.GroupStore) {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserStore()
	groups := memory.NewGroupStore()
	posts := memory.NewPostStore()

	for _, h := range handles {
		require.NoError(t, users.Create(ctx, &models.User{Handle: h}))
	}
	return NewService(users, groups, posts, zap.NewNop()), posts, groups
}

func TestCreatePost(t *testing.T) {
	s, posts, groups := newTestService(t, "kat")
	ctx := auth.WithUser(context.Background(), "kat")

	require.NoError(t, groups.Create(context.Background(), &models.Group{
		Title: "Group", Slug: "test-slug",
	}))

	created, err := s.Create(ctx, "hello", "test-slug", "posts/small.gif")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.True(t, created.GroupID.Valid)
	require.False(t, created.CreatedAt.IsZero())

	stored, err := posts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", stored.Text)
	require.Equal(t, "posts/small.gif", stored.Image)
}

func TestCreatePostAnonymous(t *testing.T) {
	s, posts, _ := newTestService(t, "kat")
	ctx := context.Background()

	before, err := posts.Count(ctx)
	require.NoError(t, err)

	_, err = s.Create(ctx, "hello", "", "")
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	after, err := posts.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after, "nothing is persisted for anonymous callers")
}

func TestCreatePostValidation(t *testing.T) {
	s, _, _ := newTestService(t, "kat")
	ctx := auth.WithUser(context.Background(), "kat")

	_, err := s.Create(ctx, "  ", "", "")
	require.ErrorIs(t, err, ErrEmptyText)

	_, err = s.Create(ctx, "hello", "no-such-group", "")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEditPost(t *testing.T) {
	s, posts, _ := newTestService(t, "kat")
	ctx := auth.WithUser(context.Background(), "kat")

	created, err := s.Create(ctx, "original", "", "")
	require.NoError(t, err)

	updated, err := s.Edit(ctx, created.ID, "edited", "", "")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Text)
	require.Equal(t, created.CreatedAt, updated.CreatedAt, "created timestamp survives edits")

	stored, err := posts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", stored.Text)
}

func TestEditPostNonAuthor(t *testing.T) {
	s, posts, _ := newTestService(t, "kat", "kit")
	katCtx := auth.WithUser(context.Background(), "kat")
	kitCtx := auth.WithUser(context.Background(), "kit")

	created, err := s.Create(katCtx, "original", "", "")
	require.NoError(t, err)

	_, err = s.Edit(kitCtx, created.ID, "hijacked", "", "")
	require.ErrorIs(t, err, auth.ErrForbidden)

	stored, err := posts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "original", stored.Text, "denied edit leaves the post unchanged")
}

func TestDeletePost(t *testing.T) {
	s, posts, _ := newTestService(t, "kat", "kit")
	katCtx := auth.WithUser(context.Background(), "kat")
	kitCtx := auth.WithUser(context.Background(), "kit")

	created, err := s.Create(katCtx, "to delete", "", "")
	require.NoError(t, err)

	err = s.Delete(kitCtx, created.ID)
	require.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, s.Delete(katCtx, created.ID))

	_, err = posts.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeletePostAnonymous(t *testing.T) {
	s, _, _ := newTestService(t, "kat")
	katCtx := auth.WithUser(context.Background(), "kat")

	created, err := s.Create(katCtx, "stays", "", "")
	require.NoError(t, err)

	err = s.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	stored, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "stays", stored.Text)
}
