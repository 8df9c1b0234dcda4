package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func newTestRepo(t *testing.T) (*miniredis.Miniredis, *sessionRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewSessionRepository(client, time.Hour).(*sessionRepo)
}

func TestSessionSaveAndGet(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, session.UserID, got.UserID)
}

func TestSessionGetMissing(t *testing.T) {
	_, repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionDelete(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-2",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, session))
	require.NoError(t, repo.Delete(ctx, "sess-2"))

	_, err := repo.Get(ctx, "sess-2")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionExpiry(t *testing.T) {
	mr, repo := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-3",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, repo.Save(ctx, session))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "sess-3")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}
