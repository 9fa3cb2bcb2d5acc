package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a list query (filters, joins)
type Scope = func(*gorm.DB) *gorm.DB

// SortSpec whitelists the sortBy values an entity accepts
type SortSpec struct {
	Columns    map[string]string // sortBy value -> column
	Default    string            // column used when sortBy is empty or unknown
	DefaultAsc bool
}

// ListQuery is one page request against a repository
type ListQuery struct {
	Page   pagination.Request
	Search string
	Scopes []Scope
}

// Options configures a CRUDRepository
type Options struct {
	Name          string
	Sort          SortSpec
	SearchColumns []string
	Preloads      []string
}

// CRUDRepository implements list/get/create/update/delete for one gorm model
type CRUDRepository[T any] struct {
	db   *gorm.DB
	opts Options
}

func NewCRUDRepository[T any](db *gorm.DB, opts Options) *CRUDRepository[T] {
	if opts.Sort.Default == "" {
		opts.Sort.Default = "created_at"
	}
	return &CRUDRepository[T]{db: db, opts: opts}
}

func (r *CRUDRepository[T]) op(ctx context.Context, function string) context.Context {
	return ctxutil.WithOperation(ctx, "repository", r.opts.Name+"."+function)
}

// orderBy resolves the requested sort against the whitelist
func (r *CRUDRepository[T]) orderBy(req pagination.Request) clause.OrderByColumn {
	if col, ok := r.opts.Sort.Columns[req.SortBy]; ok && req.SortBy != "" {
		return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: !req.Ascending()}
	}
	return clause.OrderByColumn{Column: clause.Column{Name: r.opts.Sort.Default}, Desc: !r.opts.Sort.DefaultAsc}
}

func (r *CRUDRepository[T]) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(new(T))
	if len(q.Scopes) > 0 {
		query = query.Scopes(q.Scopes...)
	}

	search := strings.TrimSpace(q.Search)
	if search != "" && len(r.opts.SearchColumns) > 0 {
		pattern := "%" + escapeLike(search) + "%"
		conds := make([]string, 0, len(r.opts.SearchColumns))
		args := make([]interface{}, 0, len(r.opts.SearchColumns))
		for _, col := range r.opts.SearchColumns {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, pattern)
		}
		query = query.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return query
}

// List fetches one page and the total row count concurrently
func (r *CRUDRepository[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	ctx = r.op(ctx, "List")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return nil, 0, err
	}

	start := time.Now()
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.filtered(gctx, q).Count(&total).Error
	})
	g.Go(func() error {
		query := r.filtered(gctx, q)
		for _, p := range r.opts.Preloads {
			query = query.Preload(p)
		}
		return query.
			Order(r.orderBy(q.Page)).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Limit(q.Page.Limit).
			Offset(q.Page.Offset()).
			Find(&items).Error
	})

	if err := g.Wait(); err != nil {
		logger.ErrorWithContext(ctx, "Failed to list records").
			Int("page", q.Page.Page).
			Int("limit", q.Page.Limit).
			String("search", q.Search).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, MapPgError(err)
	}

	logger.DebugWithContext(ctx, "Records listed").
		Int("page", q.Page.Page).
		Int("limit", q.Page.Limit).
		Int64("total", total).
		Int("returned_count", len(items)).
		Duration(time.Since(start)).
		Log()

	return items, total, nil
}

func (r *CRUDRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	ctx = r.op(ctx, "FindByID")

	var item T
	query := r.db.WithContext(ctx)
	for _, p := range r.opts.Preloads {
		query = query.Preload(p)
	}
	if err := query.First(&item, id).Error; err != nil {
		err = MapPgError(err)
		if err != ErrNotFound {
			logger.ErrorWithContext(ctx, "Failed to get record by ID").Uint("id", id).Err(err).Log()
		}
		return nil, err
	}
	return &item, nil
}

// FindOne returns the first row matching the scopes
func (r *CRUDRepository[T]) FindOne(ctx context.Context, scopes ...Scope) (*T, error) {
	ctx = r.op(ctx, "FindOne")

	var item T
	if err := r.db.WithContext(ctx).Scopes(scopes...).First(&item).Error; err != nil {
		return nil, MapPgError(err)
	}
	return &item, nil
}

func (r *CRUDRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Count(&n).Error
	if err != nil {
		return false, MapPgError(err)
	}
	return n > 0, nil
}

func (r *CRUDRepository[T]) Create(ctx context.Context, item *T) error {
	ctx = r.op(ctx, "Create")

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		err = MapPgError(err)
		logger.WarnWithContext(ctx, "Failed to create record").Err(err).Log()
		return err
	}
	return nil
}

// Update applies updates without any version guard
func (r *CRUDRepository[T]) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = r.op(ctx, "Update")

	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return MapPgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateVersioned writes updates only if the stored row version still equals
// expected, and stamps next in the same statement. Zero matched rows on an
// existing id means another writer got there first.
func (r *CRUDRepository[T]) UpdateVersioned(ctx context.Context, id uint, expected, next string, updates map[string]interface{}) error {
	ctx = r.op(ctx, "UpdateVersioned")

	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND "+model.VersionColumn+" = ?", id, expected).
		Updates(versionedValues(updates, next))
	if res.Error != nil {
		return MapPgError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	logger.InfoWithContext(ctx, "Row version mismatch").
		Uint("id", id).
		String("expected_version", expected).
		Log()
	return ErrVersionMismatch
}

func versionedValues(updates map[string]interface{}, next string) map[string]interface{} {
	values := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values[model.VersionColumn] = next
	return values
}

// Delete soft-deletes the row
func (r *CRUDRepository[T]) Delete(ctx context.Context, id uint) error {
	ctx = r.op(ctx, "Delete")

	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return MapPgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CRUDRepository[T]) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
