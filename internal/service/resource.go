package service

import (
	"context"

	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
)

// Store is the persistence surface a ResourceService needs
type Store[T any] interface {
	List(ctx context.Context, q repository.ListQuery) ([]T, int64, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// ListParams is one list request after query parsing. Filters take part in
// the cache key; Scopes apply them to the query.
type ListParams struct {
	Page    pagination.Request
	Search  string
	Filters map[string]string
	Scopes  []repository.Scope
}

// ResourceConfig describes one resource served by a ResourceService
type ResourceConfig[T, R any] struct {
	Name        string
	CachePrefix string // empty disables list caching
	ToResponse  func(*T) R

	// Authorize is consulted with the stored row before update and delete
	Authorize func(ctx context.Context, existing *T) error
	// CheckUpdate validates updates against the stored row
	CheckUpdate func(existing *T, updates map[string]interface{}) error
}

// ResourceService implements list/get/create/update/delete for entities
// without row versioning. Writes invalidate the resource's list cache.
type ResourceService[T, R any] struct {
	store Store[T]
	cache *CacheService
	cfg   ResourceConfig[T, R]
}

func NewResourceService[T, R any](store Store[T], cache *CacheService, cfg ResourceConfig[T, R]) *ResourceService[T, R] {
	return &ResourceService[T, R]{store: store, cache: cache, cfg: cfg}
}

func (s *ResourceService[T, R]) Name() string {
	return s.cfg.Name
}

func (s *ResourceService[T, R]) op(ctx context.Context, function string) context.Context {
	return ctxutil.WithOperation(ctx, "service", s.cfg.Name+"."+function)
}

func (s *ResourceService[T, R]) List(ctx context.Context, params ListParams) (pagination.Response[R], error) {
	ctx = s.op(ctx, "List")

	var key string
	if s.cfg.CachePrefix != "" {
		key = ListKey(s.cfg.CachePrefix, params.Page, params.Search, params.Filters)
		var cached pagination.Response[R]
		if s.cache.GetJSON(ctx, key, &cached) {
			logger.DebugWithContext(ctx, "List served from cache").String("cache_key", key).Log()
			return cached, nil
		}
	}

	items, total, err := s.store.List(ctx, repository.ListQuery{
		Page:   params.Page,
		Search: params.Search,
		Scopes: params.Scopes,
	})
	if err != nil {
		return pagination.Response[R]{}, mapStoreError(err)
	}

	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, s.cfg.ToResponse(&items[i]))
	}
	resp := pagination.BuildResponse(out, total, params.Page)

	if key != "" {
		s.cache.SetJSON(ctx, key, resp)
	}
	return resp, nil
}

func (s *ResourceService[T, R]) Get(ctx context.Context, id uint) (*R, error) {
	ctx = s.op(ctx, "Get")

	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	resp := s.cfg.ToResponse(item)
	return &resp, nil
}

func (s *ResourceService[T, R]) Create(ctx context.Context, item *T) (*R, error) {
	ctx = s.op(ctx, "Create")

	if err := s.store.Create(ctx, item); err != nil {
		logger.WarnWithContext(ctx, "Create rejected").Err(err).Log()
		return nil, mapStoreError(err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Record created").String("resource", s.cfg.Name).Log()
	resp := s.cfg.ToResponse(item)
	return &resp, nil
}

func (s *ResourceService[T, R]) Update(ctx context.Context, id uint, updates map[string]interface{}) (*R, error) {
	ctx = s.op(ctx, "Update")

	if s.cfg.Authorize != nil || s.cfg.CheckUpdate != nil {
		existing, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		if s.cfg.Authorize != nil {
			if err := s.cfg.Authorize(ctx, existing); err != nil {
				return nil, err
			}
		}
		if s.cfg.CheckUpdate != nil {
			if err := s.cfg.CheckUpdate(existing, updates); err != nil {
				return nil, err
			}
		}
	}

	if len(updates) > 0 {
		if err := s.store.Update(ctx, id, updates); err != nil {
			return nil, mapStoreError(err)
		}
		s.invalidate(ctx)
	}

	logger.InfoWithContext(ctx, "Record updated").
		String("resource", s.cfg.Name).
		Uint("id", id).
		Int("fields", len(updates)).
		Log()
	return s.Get(ctx, id)
}

func (s *ResourceService[T, R]) Delete(ctx context.Context, id uint) error {
	ctx = s.op(ctx, "Delete")

	if s.cfg.Authorize != nil {
		existing, err := s.store.FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err)
		}
		if err := s.cfg.Authorize(ctx, existing); err != nil {
			return err
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Record deleted").String("resource", s.cfg.Name).Uint("id", id).Log()
	return nil
}

func (s *ResourceService[T, R]) invalidate(ctx context.Context) {
	if s.cfg.CachePrefix != "" {
		s.cache.Invalidate(ctx, s.cfg.CachePrefix)
	}
}
