package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewCache(0)
	defer c.Close()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "noobgg:list:games:a", []byte(`{"x":1}`), time.Minute))

	got, ok, err := c.Get(ctx, "noobgg:list:games:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"x":1}`, string(got))

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "noobgg:list:games:a")
	assert.False(t, ok)

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetCopiesValue(t *testing.T) {
	ctx := context.Background()
	c := NewCache(0)
	defer c.Close()

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, time.Minute)
	buf[0] = 'z'

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func TestCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewCache(0)
	defer c.Close()

	_ = c.Set(ctx, "noobgg:list:games:1", []byte("1"), time.Minute)
	_ = c.Set(ctx, "noobgg:list:games:2", []byte("2"), time.Minute)
	_ = c.Set(ctx, "noobgg:list:platforms:1", []byte("3"), time.Minute)

	require.NoError(t, c.DeletePrefix(ctx, "noobgg:list:games:"))

	_, ok, _ := c.Get(ctx, "noobgg:list:games:1")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "noobgg:list:platforms:1")
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "noobgg:list:platforms:1"))
	assert.Equal(t, 0, c.Len())
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := NewCache(time.Millisecond)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
