package token

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the presented code matches no stored token.
	ErrNotFound = errors.New("token not found")
	// ErrInactive indicates the token was deactivated by an operator.
	ErrInactive = errors.New("token is inactive")
	// ErrExpired indicates the token's validity window has closed.
	ErrExpired = errors.New("token has expired")
	// ErrLimitReached indicates the usage cap is exhausted.
	ErrLimitReached = errors.New("token usage limit reached")
	// ErrDuplicateCode indicates a generated code collided with an
	// existing one at insert time; callers retry with a fresh code.
	ErrDuplicateCode = errors.New("token code already exists")
)

// invalidReason returns the first failing validity condition, or nil
// when the token is usable.
func invalidReason(t Token, now time.Time) error {
	switch {
	case !t.IsActive:
		return ErrInactive
	case t.Expired(now):
		return ErrExpired
	case t.HasReachedLimit():
		return ErrLimitReached
	default:
		return nil
	}
}
