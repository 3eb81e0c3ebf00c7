// internal/session/redis_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workgate/internal/auth"
)

func newRedisStoreTest(t *testing.T) (*redisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := NewRedisStore(rdb, 30*time.Minute, 8*time.Hour, zap.NewNop().Sugar()).(*redisStore)
	return store, mr
}

func testPrincipal() *auth.Principal {
	return &auth.Principal{
		TenantCode:        "AD1000",
		UserID:            "alice",
		Name:              "Alice",
		Authorities:       []string{"USER"},
		AccessibleMenuIDs: []string{"FW0001"},
		Enabled:           true,
	}
}

func TestCreateAndGetRoundtrip(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Principal.UserID)
	assert.True(t, got.Principal.CanAccess("FW0001"))
}

func TestSecondLoginInvalidatesFirstSession(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	first, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)
	second, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, second.ID)
	assert.NoError(t, err)
}

func TestSessionIDIsFreshPerLogin(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		sess, err := store.Create(ctx, testPrincipal())
		require.NoError(t, err)
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestDeleteOfSupersededSessionKeepsCurrentOne(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	first, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)
	second, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)

	// A stale logout from the first device must not tear down the new session.
	require.NoError(t, store.Delete(ctx, first.ID))
	_, err = store.Get(ctx, second.ID)
	assert.NoError(t, err)
}

func TestEnsureCSRFIsIdempotent(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)

	tok1, err := store.EnsureCSRF(ctx, sess.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tok1)
	tok2, err := store.EnsureCSRF(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, tok1, tok2)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, tok1, got.CSRFToken)
}

func TestEnsureCSRFUnknownSession(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	_, err := store.EnsureCSRF(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdleTimeout(t *testing.T) {
	store, mr := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRefreshesIdleExpiry(t *testing.T) {
	store, mr := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)

	mr.FastForward(29 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)

	mr.FastForward(29 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestAbsoluteTimeout(t *testing.T) {
	store, _ := newRedisStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPrincipal())
	require.NoError(t, err)

	// A client polling inside the idle window still cannot outlive the
	// absolute lifetime.
	store.now = func() time.Time { return time.Now().Add(9 * time.Hour) }
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
