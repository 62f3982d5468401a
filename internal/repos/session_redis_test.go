package repos_test

import (
	"context"
	"os"
	"testing"
	"time"

	"shop/internal/domain"
	"shop/internal/repos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a reachable redis; set SHOP_TEST_REDIS=host:port to run.
func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("SHOP_TEST_REDIS")
	if addr == "" {
		t.Skip("SHOP_TEST_REDIS not set")
	}
	rdb, err := repos.OpenRedis(addr, "", 0)
	require.NoError(t, err)
	defer rdb.Close()
	ctx := context.Background()
	store := repos.NewRedisSessionStore(rdb)

	now := time.Now().UTC()
	sess := domain.Session{ID: "test-" + now.Format("150405.000000000"), UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	ttl, err := rdb.TTL(ctx, "session:"+sess.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, repos.ErrNoSession)

	past := domain.Session{ID: "expired", UserID: 7, ExpiresAt: now.Add(-time.Second)}
	assert.Error(t, store.Save(ctx, past))
}
