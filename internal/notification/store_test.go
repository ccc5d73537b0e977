package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushN(t *testing.T, store *Store, userID uint, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		note := NewLike("bob", 2, uint(i), fmt.Sprintf("comment %d", i))
		note.ID = fmt.Sprintf("n-%d", i)
		note.CreatedAt = time.Now().UTC()
		_, err := store.Push(context.Background(), userID, note)
		require.NoError(t, err)
	}
}

func TestStore_BoundedRetention(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	pushN(t, store, 1, 25)

	items, unread, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 20)
	assert.Equal(t, int64(25), unread)
	assert.Equal(t, "n-25", items[0].ID)
	assert.Equal(t, "n-6", items[19].ID)

	assert.True(t, mr.TTL("notifications:user:1") > 0)
	assert.True(t, mr.TTL("notifications:unread_count:1") > 0)
}

func TestStore_MarkRead(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pushN(t, store, 1, 3)

	unread, err := store.MarkRead(ctx, 1, "n-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	t.Run("already read keeps count", func(t *testing.T) {
		unread, err := store.MarkRead(ctx, 1, "n-2")
		require.NoError(t, err)
		assert.Equal(t, int64(2), unread)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.MarkRead(ctx, 1, "missing")
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	items, unread, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
	for _, n := range items {
		assert.Equal(t, n.ID == "n-2", n.IsRead, n.ID)
	}
}

func TestStore_MarkReadNeverNegative(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	pushN(t, store, 1, 1)
	require.NoError(t, mr.Set("notifications:unread_count:1", "0"))

	unread, err := store.MarkRead(ctx, 1, "n-1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, unread, err = store.List(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestStore_ClearAndEmpty(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	items, unread, err := store.List(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, unread)

	pushN(t, store, 42, 2)
	require.NoError(t, store.Clear(ctx, 42))
	assert.False(t, mr.Exists("notifications:user:42"))
	assert.False(t, mr.Exists("notifications:unread_count:42"))
}

func TestStore_UsersAreIsolated(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pushN(t, store, 1, 2)
	items, unread, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, unread)
}
