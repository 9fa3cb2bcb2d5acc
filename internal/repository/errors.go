package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Storage-level errors surfaced to the service layer instead of driver errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrForeignKey      = errors.New("referenced record does not exist")
	ErrVersionMismatch = errors.New("row version mismatch")
	ErrCapacity        = errors.New("capacity reached")
	ErrBelowMembers    = errors.New("capacity below current member count")
)

// MapPgError translates gorm and Postgres errors to the sentinels above.
// Anything unrecognised passes through unchanged.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}
