package token

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Gate evaluates token validity and performs redemptions against a
// Store. All end-user usage accounting flows through Redeem; the
// operator operations (ResetUsage, Activate, Deactivate) are reached
// only from authenticated surfaces.
type Gate struct {
	store Store
	now   func() time.Time
}

// NewGate builds a Gate. A nil clock defaults to time.Now.
func NewGate(store Store, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{store: store, now: now}
}

// IssueInput describes a token to create on behalf of an operator.
type IssueInput struct {
	LeaderLabel string
	Description string
	ExpiresAt   time.Time
	MaxUses     *int
	CreatedBy   string
	CodeLength  int
}

// Issue allocates a unique code and persists a fresh token with zero
// usage. Creating a token that is already expired or at its limit is
// allowed; it simply starts in a non-usable state.
func (g *Gate) Issue(ctx context.Context, input IssueInput) (Token, error) {
	label := strings.TrimSpace(input.LeaderLabel)
	if label == "" {
		return Token{}, errors.New("leader label is required")
	}

	for {
		code, err := GenerateUniqueCode(ctx, g.store, input.CodeLength)
		if err != nil {
			return Token{}, err
		}

		tok, err := g.store.Create(ctx, Token{
			Code:        code,
			LeaderLabel: label,
			Description: strings.TrimSpace(input.Description),
			ExpiresAt:   input.ExpiresAt,
			IsActive:    true,
			MaxUses:     input.MaxUses,
			CreatedBy:   input.CreatedBy,
		})
		if errors.Is(err, ErrDuplicateCode) {
			// Lost the allocation race; regenerate.
			continue
		}
		if err != nil {
			return Token{}, err
		}
		return tok, nil
	}
}

// Validate looks up a code and checks validity without consuming a
// use. Public form-entry checks call this.
func (g *Gate) Validate(ctx context.Context, code string) (Token, error) {
	tok, err := g.store.FindByCode(ctx, NormalizeCode(code))
	if err != nil {
		return Token{}, err
	}
	if reason := invalidReason(tok, g.now()); reason != nil {
		return tok, reason
	}
	return tok, nil
}

// Redeem validates the code and consumes exactly one use. The returned
// snapshot reflects the state after the increment. The usage cap is
// enforced again inside the store's conditional write, so two racing
// redemptions of a token's last use cannot both succeed.
func (g *Gate) Redeem(ctx context.Context, code string) (Token, error) {
	tok, err := g.Validate(ctx, code)
	if err != nil {
		return tok, err
	}
	return g.store.IncrementUsage(ctx, tok.ID)
}

// ResetUsage returns a limit-reached token to service by zeroing its
// usage count. Operator-only.
func (g *Gate) ResetUsage(ctx context.Context, tok Token) (Token, error) {
	return g.store.ResetUsage(ctx, tok.ID)
}

// Activate re-enables redemption for a deactivated token.
func (g *Gate) Activate(ctx context.Context, tok Token) (Token, error) {
	return g.store.Update(ctx, tok.ID, map[string]any{"is_active": true})
}

// Deactivate blocks redemption regardless of expiry or usage state.
func (g *Gate) Deactivate(ctx context.Context, tok Token) (Token, error) {
	return g.store.Update(ctx, tok.ID, map[string]any{"is_active": false})
}

// NormalizeCode uppercases a user-typed code so entry case never
// matters; codes are stored uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
