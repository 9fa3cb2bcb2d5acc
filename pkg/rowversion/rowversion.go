// Package rowversion implements the optimistic concurrency check applied to
// versioned rows (user profiles, lobbies).
package rowversion

import (
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Initial is the token stamped on a row when it is inserted
const Initial = "0"

var (
	// ErrConflict means the supplied version no longer matches the stored one
	ErrConflict = errors.New("row version conflict")
	// ErrMissing means the caller omitted the version while it is mandatory
	ErrMissing = errors.New("row version required")
)

// CheckAndAdvance compares the supplied token with the stored one and returns
// the token the row must carry after the update.
//
// A nil supplied token is an unconditional update and always succeeds.
// A mismatch returns ErrConflict and is never retried here.
func CheckAndAdvance(stored string, supplied *string) (string, error) {
	if supplied != nil && *supplied != stored {
		return "", ErrConflict
	}
	return Next(stored), nil
}

// Next derives a token different from stored. Numeric tokens are incremented,
// anything else is replaced with a random UUID.
func Next(stored string) string {
	n, err := strconv.ParseInt(stored, 10, 64)
	if err == nil && n >= 0 && n < math.MaxInt64 {
		return strconv.FormatInt(n+1, 10)
	}

	for {
		next := uuid.NewString()
		if next != stored {
			return next
		}
	}
}

// Policy decides whether a version must accompany every update
type Policy struct {
	Required bool
}

// Require returns ErrMissing when the policy makes the version mandatory and none was supplied
func (p Policy) Require(supplied *string) error {
	if p.Required && supplied == nil {
		return ErrMissing
	}
	return nil
}

// Parse turns an optional request field into a supplied token. Only a
// missing field is absent; an empty string is a token like any other.
func Parse(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := *raw
	return &v
}
