package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ufukozendev/noobgg-sub002/pkg/circuit"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/metrics"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"go.uber.org/zap"
)

// CacheStore is a byte cache with prefix invalidation (Redis or in-memory)
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// CacheService caches list responses. The primary store sits behind a
// circuit breaker; while it fails or the breaker is open the local store
// serves instead. A nil *CacheService is a disabled cache.
//
// A prefix whose primary invalidation failed stays pending: keys under it
// bypass the primary until a retried invalidation succeeds.
type CacheService struct {
	primary     CacheStore
	primaryName string
	local       CacheStore
	breaker     *circuit.Breaker
	ttl         time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewCacheService wires the stores. primary may be nil when Redis is disabled.
func NewCacheService(primary CacheStore, local CacheStore, breaker *circuit.Breaker, ttl time.Duration) *CacheService {
	s := &CacheService{
		primary:     primary,
		primaryName: "redis",
		local:       local,
		breaker:     breaker,
		ttl:         ttl,
		pending:     map[string]struct{}{},
	}
	if breaker != nil {
		breaker.OnStateChange(func(name string, from, to circuit.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			logger.GetLogger().Warn("Cache breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		})
	}
	return s
}

// ListKey builds a stable key for one list request. Filters are sorted so
// the same query always maps to the same key.
func ListKey(prefix string, page pagination.Request, search string, filters map[string]string) string {
	var b strings.Builder
	b.WriteString("page=" + strconv.Itoa(page.Page))
	b.WriteString("&limit=" + strconv.Itoa(page.Limit))
	b.WriteString("&sortBy=" + page.SortBy)
	b.WriteString("&sortOrder=" + page.SortOrder)
	b.WriteString("&search=" + search)

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("&" + k + "=" + filters[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return prefix + hex.EncodeToString(sum[:])
}

// GetJSON decodes a cached value into dst and reports whether it was found
func (s *CacheService) GetJSON(ctx context.Context, key string, dst any) bool {
	if s == nil {
		return false
	}

	data, backend, ok := s.get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.WarnWithContext(ctx, "Discarding undecodable cache entry").
			String("cache_key", key).
			String("backend", backend).
			Err(err).
			Log()
		return false
	}
	return true
}

func (s *CacheService) get(ctx context.Context, key string) ([]byte, string, bool) {
	if s.primary != nil && s.primaryFresh(ctx, key) {
		var (
			data  []byte
			found bool
		)
		err := s.callPrimary(ctx, func(ctx context.Context) error {
			var err error
			data, found, err = s.primary.Get(ctx, key)
			return err
		})
		if err == nil {
			metrics.CacheLookups.WithLabelValues(s.primaryName, hitOrMiss(found)).Inc()
			return data, s.primaryName, found
		}
		metrics.CacheLookups.WithLabelValues(s.primaryName, "error").Inc()
		logger.DebugWithContext(ctx, "Primary cache unavailable, using local").
			String("cache_key", key).
			Err(err).
			Log()
	}

	if s.local == nil {
		return nil, "", false
	}
	data, found, err := s.local.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("memory", "error").Inc()
		return nil, "", false
	}
	metrics.CacheLookups.WithLabelValues("memory", hitOrMiss(found)).Inc()
	return data, "memory", found
}

// SetJSON stores v under key. Failures are logged and otherwise ignored.
func (s *CacheService) SetJSON(ctx context.Context, key string, v any) {
	if s == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to encode cache entry").String("cache_key", key).Err(err).Log()
		return
	}

	if s.primary != nil && s.primaryFresh(ctx, key) {
		err := s.callPrimary(ctx, func(ctx context.Context) error {
			return s.primary.Set(ctx, key, data, s.ttl)
		})
		if err == nil {
			return
		}
		logger.DebugWithContext(ctx, "Primary cache write failed, using local").String("cache_key", key).Err(err).Log()
	}
	if s.local != nil {
		if err := s.local.Set(ctx, key, data, s.ttl); err != nil {
			logger.WarnWithContext(ctx, "Local cache write failed").String("cache_key", key).Err(err).Log()
		}
	}
}

// Invalidate drops every entry under prefix from both stores
func (s *CacheService) Invalidate(ctx context.Context, prefix string) {
	if s == nil {
		return
	}

	if s.primary != nil {
		err := s.callPrimary(ctx, func(ctx context.Context) error {
			return s.primary.DeletePrefix(ctx, prefix)
		})
		if err != nil {
			s.markPending(prefix)
			metrics.CacheInvalidationFailures.WithLabelValues(s.primaryName).Inc()
			logger.WarnWithContext(ctx, "Failed to invalidate primary cache, deferring").
				String("prefix", prefix).
				Err(err).
				Log()
		} else {
			s.settle(prefix)
		}
	}
	if s.local != nil {
		if err := s.local.DeletePrefix(ctx, prefix); err != nil {
			logger.WarnWithContext(ctx, "Failed to invalidate local cache").String("prefix", prefix).Err(err).Log()
		}
	}
}

func (s *CacheService) markPending(prefix string) {
	s.mu.Lock()
	s.pending[prefix] = struct{}{}
	s.mu.Unlock()
}

func (s *CacheService) settle(prefix string) {
	s.mu.Lock()
	delete(s.pending, prefix)
	s.mu.Unlock()
}

// primaryFresh retries the deferred invalidations covering key and reports
// whether the primary may be used for it
func (s *CacheService) primaryFresh(ctx context.Context, key string) bool {
	s.mu.Lock()
	var prefixes []string
	for p := range s.pending {
		if strings.HasPrefix(key, p) {
			prefixes = append(prefixes, p)
		}
	}
	s.mu.Unlock()

	for _, p := range prefixes {
		err := s.callPrimary(ctx, func(ctx context.Context) error {
			return s.primary.DeletePrefix(ctx, p)
		})
		if err != nil {
			return false
		}
		s.settle(p)
		logger.InfoWithContext(ctx, "Deferred cache invalidation applied").String("prefix", p).Log()
	}
	return true
}

func (s *CacheService) callPrimary(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.breaker == nil {
		return fn(ctx)
	}
	return s.breaker.Do(ctx, fn)
}

func hitOrMiss(found bool) string {
	if found {
		return "hit"
	}
	return "miss"
}
