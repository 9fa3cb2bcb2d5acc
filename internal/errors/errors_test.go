package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"version required", ErrVersionRequired, http.StatusBadRequest},
		{"unauthorized", ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"exists", ErrAlreadyExists, http.StatusConflict},
		{"version conflict", ErrVersionConflict, http.StatusConflict},
		{"lobby full", ErrLobbyFull, http.StatusConflict},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("update: %w", WrapError(ErrVersionConflict, errors.New("stale"))), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	cause := errors.New("row gone")
	wrapped := WrapError(ErrNotFound, cause)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should match its sentinel")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if errors.Is(wrapped, ErrForbidden) {
		t.Error("different codes must not match")
	}
	if !errors.Is(WithMessage(ErrNotFound, "lobby not found"), ErrNotFound) {
		t.Error("message override keeps the code")
	}
}

func TestGetErrorMessageAndCode(t *testing.T) {
	if GetErrorMessage(nil) != "" {
		t.Error("nil error has no message")
	}
	if got := GetErrorMessage(WithMessage(ErrNotFound, "game not found")); got != "game not found" {
		t.Errorf("message = %q", got)
	}
	if got := GetErrorMessage(errors.New("raw")); got != "raw" {
		t.Errorf("message = %q", got)
	}
	if got := GetErrorCode(errors.New("raw")); got != CodeInternal {
		t.Errorf("code = %q", got)
	}
	if got := GetErrorCode(ErrLobbyFull); got != CodeLobbyFull {
		t.Errorf("code = %q", got)
	}
}

func TestDomainError_Error(t *testing.T) {
	if got := ErrNotFound.Error(); got != "resource not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := WrapError(ErrInternal, errors.New("db down")).Error(); got != "internal server error: db down" {
		t.Errorf("Error() = %q", got)
	}
}
