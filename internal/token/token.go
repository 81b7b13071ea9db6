// Package token implements the form-token lifecycle: code generation,
// validity evaluation, and the redemption protocol that gates
// unauthenticated status-update submissions.
package token

import (
	"time"

	"github.com/google/uuid"
)

// Token is a snapshot of a form token. It is immutable; mutations go
// through a Store.
type Token struct {
	ID          uuid.UUID
	Code        string
	LeaderLabel string
	Description string
	ExpiresAt   time.Time
	IsActive    bool
	MaxUses     *int
	UsedCount   int
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expired reports whether the token's validity window has closed.
// An expiry exactly equal to now is still within the window.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// HasReachedLimit reports whether the usage cap is exhausted. Tokens
// without a cap never reach a limit.
func (t Token) HasReachedLimit() bool {
	return t.MaxUses != nil && t.UsedCount >= *t.MaxUses
}

// Valid reports whether the token may be redeemed at now: it must be
// active, unexpired, and under its usage cap.
func (t Token) Valid(now time.Time) bool {
	return t.IsActive && !t.Expired(now) && !t.HasReachedLimit()
}

// RemainingUses returns how many redemptions are left and whether the
// token is capped at all. Uncapped tokens return (0, false).
func (t Token) RemainingUses() (int, bool) {
	if t.MaxUses == nil {
		return 0, false
	}
	remaining := *t.MaxUses - t.UsedCount
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// State classifies a token for operator-facing displays.
type State int

const (
	StateActive State = iota
	StateInactive
	StateExpired
	StateLimitReached
)

// StateAt evaluates the display state at now. Failures are reported in
// check order: active flag, expiry, usage cap.
func (t Token) StateAt(now time.Time) State {
	switch {
	case !t.IsActive:
		return StateInactive
	case t.Expired(now):
		return StateExpired
	case t.HasReachedLimit():
		return StateLimitReached
	default:
		return StateActive
	}
}

// Label returns the human-readable state label shown in the admin UI.
func (s State) Label() string {
	switch s {
	case StateActive:
		return "Active"
	case StateInactive:
		return "Inactive"
	case StateExpired:
		return "Expired"
	case StateLimitReached:
		return "Limit Reached"
	default:
		return "Unknown"
	}
}
