package service

import (
	"context"
	"errors"

	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/metrics"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
)

// VersionedStore reads a row and writes it under a row version guard
type VersionedStore[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	UpdateVersioned(ctx context.Context, id uint, expected, next string, updates map[string]interface{}) error
}

// prepareFunc authorizes and validates an update against the stored row
// and returns the columns to write
type prepareFunc[PT any] func(existing PT) (map[string]interface{}, error)

// updateVersioned runs read, CheckAndAdvance and the conditional write.
//
// With a supplied version a lost race is reported as VERSION_CONFLICT.
// Without one the update is unconditional, so a lost race only means the
// row must be re-read to derive the next token; that loop is bounded.
func updateVersioned[T any, PT interface {
	*T
	model.Versioned
}](ctx context.Context, resource string, store VersionedStore[T], policy rowversion.Policy, id uint, rawVersion *string, prepare prepareFunc[PT]) (PT, error) {
	supplied := rowversion.Parse(rawVersion)
	if err := policy.Require(supplied); err != nil {
		return nil, apperrors.ErrVersionRequired
	}

	for attempt := 1; ; attempt++ {
		row, err := store.FindByID(ctx, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		existing := PT(row)

		values, err := prepare(existing)
		if err != nil {
			return nil, err
		}

		stored := existing.GetRowVersion()
		next, err := rowversion.CheckAndAdvance(stored, supplied)
		if err != nil {
			metrics.VersionConflicts.WithLabelValues(resource).Inc()
			logger.InfoWithContext(ctx, "Stale row version rejected").
				String("resource", resource).
				Uint("id", id).
				String("stored_version", stored).
				String("supplied_version", *supplied).
				Log()
			return nil, apperrors.ErrVersionConflict
		}

		err = store.UpdateVersioned(ctx, id, stored, next, values)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrVersionMismatch) {
			return nil, mapStoreError(err)
		}
		if supplied != nil {
			metrics.VersionConflicts.WithLabelValues(resource).Inc()
			return nil, apperrors.ErrVersionConflict
		}
		if attempt >= constants.UnconditionalUpdateAttempts {
			logger.WarnWithContext(ctx, "Unconditional update kept losing races").
				String("resource", resource).
				Uint("id", id).
				Int("attempts", attempt).
				Log()
			return nil, apperrors.ErrVersionConflict
		}
		metrics.UpdateRetries.WithLabelValues(resource).Inc()
	}

	row, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return PT(row), nil
}
