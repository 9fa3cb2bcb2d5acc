package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches two domain errors by code so wrapped copies still compare equal
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMessage returns a copy of the domain error carrying a more specific message
func WithMessage(domainErr *DomainError, message string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: message,
		Err:     domainErr.Err,
	}
}

// Error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeVersionRequired    = "VERSION_REQUIRED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeVersionConflict    = "VERSION_CONFLICT"
	CodeLobbyFull          = "LOBBY_FULL"
	CodeUnsupportedVersion = "UNSUPPORTED_API_VERSION"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Predefined domain errors
var (
	// Validation errors
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "invalid input")
	ErrVersionRequired    = NewDomainError(CodeVersionRequired, "rowVersion is required for updates")
	ErrUnsupportedVersion = NewDomainError(CodeUnsupportedVersion, "unsupported API version")

	// Authentication errors
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrInvalidToken = NewDomainError(CodeUnauthorized, "invalid or expired token")
	ErrForbidden    = NewDomainError(CodeForbidden, "you are not allowed to modify this resource")

	// Resource errors
	ErrNotFound        = NewDomainError(CodeNotFound, "resource not found")
	ErrAlreadyExists   = NewDomainError(CodeAlreadyExists, "resource already exists")
	ErrVersionConflict = NewDomainError(CodeVersionConflict, "the resource was modified by someone else, reload it and try again")
	ErrLobbyFull       = NewDomainError(CodeLobbyFull, "lobby is full")

	// System errors
	ErrRateLimited        = NewDomainError(CodeRateLimited, "too many requests")
	ErrInternal           = NewDomainError(CodeInternal, "internal server error")
	ErrServiceUnavailable = NewDomainError(CodeServiceUnavailable, "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeInvalidInput, CodeVersionRequired, CodeUnsupportedVersion:
		return http.StatusBadRequest

	case CodeUnauthorized:
		return http.StatusUnauthorized

	case CodeForbidden:
		return http.StatusForbidden

	case CodeNotFound:
		return http.StatusNotFound

	case CodeAlreadyExists, CodeVersionConflict, CodeLobbyFull:
		return http.StatusConflict

	case CodeRateLimited:
		return http.StatusTooManyRequests

	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode returns the domain code, INTERNAL_ERROR for anything else
func GetErrorCode(err error) string {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return CodeInternal
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
