package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapPgError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, ErrAlreadyExists},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), ErrAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ErrForeignKey},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrAlreadyExists},
		{"other pg error", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, nil},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPgError(tt.in)
			if tt.name == "other pg error" {
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) {
					t.Fatalf("expected pg error to pass through, got %v", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("MapPgError() = %v, want %v", got, tt.want)
			}
		})
	}
}
