package service

import (
	"context"
	"errors"

	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
)

// mapStoreError converts storage sentinels into domain errors
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsDomainError(err) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return apperrors.ErrAlreadyExists
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.WrapError(apperrors.WithMessage(apperrors.ErrInvalidInput, "referenced record does not exist"), err)
	case errors.Is(err, repository.ErrVersionMismatch), errors.Is(err, rowversion.ErrConflict):
		return apperrors.ErrVersionConflict
	case errors.Is(err, repository.ErrCapacity):
		return apperrors.ErrLobbyFull
	case errors.Is(err, repository.ErrBelowMembers):
		return errBelowMembers
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	case errors.Is(err, context.Canceled):
		return err
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}
