package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufukozendev/noobgg-sub002/pkg/cache"
	"github.com/ufukozendev/noobgg-sub002/pkg/circuit"
	"github.com/ufukozendev/noobgg-sub002/pkg/metrics"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/redis"
)

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, redis.NewFromUniversal(rdb)
}

func newLocalCache(t *testing.T) *cache.Cache {
	t.Helper()
	c := cache.NewCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestListKey(t *testing.T) {
	page := pagination.Normalize("2", "10")

	a := ListKey("noobgg:list:games:", page, "halo", map[string]string{"gameId": "3", "region": "eu"})
	b := ListKey("noobgg:list:games:", page, "halo", map[string]string{"region": "eu", "gameId": "3"})
	assert.Equal(t, a, b)
	assert.Contains(t, a, "noobgg:list:games:")

	assert.NotEqual(t, a, ListKey("noobgg:list:games:", pagination.Normalize("3", "10"), "halo", nil))
	assert.NotEqual(t, a, ListKey("noobgg:list:games:", page, "halo2", map[string]string{"gameId": "3", "region": "eu"}))
	assert.NotEqual(t,
		ListKey("p:", page, "", nil),
		ListKey("p:", pagination.NormalizeSort(page, "name", "asc"), "", nil),
	)
}

func TestCacheService_NilIsDisabled(t *testing.T) {
	var s *CacheService
	var out map[string]int

	s.SetJSON(context.Background(), "k", map[string]int{"a": 1})
	assert.False(t, s.GetJSON(context.Background(), "k", &out))
	s.Invalidate(context.Background(), "k")
}

func TestCacheService_Redis(t *testing.T) {
	mr, rc := newRedisCache(t)
	s := NewCacheService(rc, newLocalCache(t), circuit.NewBreaker("test-redis", circuit.DefaultConfig(), nil), time.Minute)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, s.GetJSON(ctx, "noobgg:list:games:1", &out))

	s.SetJSON(ctx, "noobgg:list:games:1", map[string]int{"a": 1})
	s.SetJSON(ctx, "noobgg:list:platforms:1", map[string]int{"b": 2})
	assert.True(t, mr.Exists("noobgg:list:games:1"))

	require.True(t, s.GetJSON(ctx, "noobgg:list:games:1", &out))
	assert.Equal(t, map[string]int{"a": 1}, out)

	s.Invalidate(ctx, "noobgg:list:games:")
	assert.False(t, mr.Exists("noobgg:list:games:1"))
	assert.True(t, mr.Exists("noobgg:list:platforms:1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, s.GetJSON(ctx, "noobgg:list:platforms:1", &out))
}

func TestCacheService_FallsBackWhenRedisDown(t *testing.T) {
	mr, rc := newRedisCache(t)
	cfg := circuit.Config{Threshold: 2, Timeout: time.Hour, SuccessThreshold: 1, MaxHalfOpen: 1}
	breaker := circuit.NewBreaker("test-redis-down", cfg, nil)
	local := newLocalCache(t)
	s := NewCacheService(rc, local, breaker, time.Minute)
	ctx := context.Background()

	mr.Close()

	s.SetJSON(ctx, "noobgg:list:games:x", []int{1, 2})
	var out []int
	require.True(t, s.GetJSON(ctx, "noobgg:list:games:x", &out))
	assert.Equal(t, []int{1, 2}, out)
	assert.Equal(t, circuit.StateOpen, breaker.State())

	s.Invalidate(ctx, "noobgg:list:games:")
	assert.False(t, s.GetJSON(ctx, "noobgg:list:games:x", &out))
	assert.Equal(t, 0, local.Len())
}

func TestCacheService_FailedInvalidationIsRetried(t *testing.T) {
	mr, rc := newRedisCache(t)
	s := NewCacheService(rc, newLocalCache(t), nil, time.Minute)
	ctx := context.Background()
	failures := metrics.CacheInvalidationFailures.WithLabelValues("redis")
	before := testutil.ToFloat64(failures)

	s.SetJSON(ctx, "noobgg:list:games:1", map[string]int{"a": 1})
	s.SetJSON(ctx, "noobgg:list:platforms:1", map[string]int{"b": 2})
	require.True(t, mr.Exists("noobgg:list:games:1"))

	mr.SetError("LOADING redis is loading the dataset")
	s.Invalidate(ctx, "noobgg:list:games:")
	assert.Equal(t, before+1, testutil.ToFloat64(failures))
	mr.SetError("")

	// the stale entry survived in redis but must not be served
	require.True(t, mr.Exists("noobgg:list:games:1"))
	var out map[string]int
	assert.False(t, s.GetJSON(ctx, "noobgg:list:games:1", &out))
	assert.False(t, mr.Exists("noobgg:list:games:1"))

	require.True(t, s.GetJSON(ctx, "noobgg:list:platforms:1", &out))
	assert.Equal(t, map[string]int{"b": 2}, out)

	s.SetJSON(ctx, "noobgg:list:games:1", map[string]int{"a": 2})
	require.True(t, s.GetJSON(ctx, "noobgg:list:games:1", &out))
	assert.Equal(t, map[string]int{"a": 2}, out)
}

func TestCacheService_LocalOnly(t *testing.T) {
	s := NewCacheService(nil, newLocalCache(t), nil, time.Minute)
	ctx := context.Background()

	s.SetJSON(ctx, "k1", "v")
	var out string
	require.True(t, s.GetJSON(ctx, "k1", &out))
	assert.Equal(t, "v", out)
}
