package token

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func testClock(t *testing.T) (time.Time, func() time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return now, func() time.Time { return now }
}

func issueTestToken(t *testing.T, store Store, maxUses *int, expiresAt time.Time) Token {
	t.Helper()
	tok, err := store.Create(context.Background(), Token{
		Code:        "VG2026AB",
		LeaderLabel: "Youth VG - North",
		ExpiresAt:   expiresAt,
		IsActive:    true,
		MaxUses:     maxUses,
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return tok
}

func TestRedeemSequentialCap(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	issueTestToken(t, store, intPtr(3), now.Add(time.Hour))

	for i := 1; i <= 3; i++ {
		tok, err := gate.Redeem(ctx, "VG2026AB")
		if err != nil {
			t.Fatalf("redemption %d failed: %v", i, err)
		}
		if tok.UsedCount != i {
			t.Fatalf("redemption %d: used count = %d, want %d", i, tok.UsedCount, i)
		}
	}

	if _, err := gate.Redeem(ctx, "VG2026AB"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("fourth redemption error = %v, want ErrLimitReached", err)
	}

	tok, err := store.FindByCode(ctx, "VG2026AB")
	if err != nil {
		t.Fatalf("find token: %v", err)
	}
	if tok.UsedCount != 3 {
		t.Fatalf("used count after failed redemption = %d, want 3", tok.UsedCount)
	}
}

func TestRedeemReturnsPostIncrementSnapshot(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	issueTestToken(t, store, intPtr(5), now.Add(time.Hour))

	tok, err := gate.Redeem(ctx, "VG2026AB")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if tok.UsedCount != 1 {
		t.Fatalf("snapshot used count = %d, want post-increment 1", tok.UsedCount)
	}
}

func TestRedeemFailures(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)

	tests := []struct {
		name    string
		mutate  func(Token) Token
		wantErr error
	}{
		{
			name:    "unknown code",
			mutate:  nil,
			wantErr: ErrNotFound,
		},
		{
			name:    "inactive",
			mutate:  func(tok Token) Token { tok.IsActive = false; return tok },
			wantErr: ErrInactive,
		},
		{
			name:    "expired",
			mutate:  func(tok Token) Token { tok.ExpiresAt = now.Add(-time.Second); return tok },
			wantErr: ErrExpired,
		},
		{
			name:    "limit reached",
			mutate:  func(tok Token) Token { tok.UsedCount = 2; return tok },
			wantErr: ErrLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			gate := NewGate(store, clock)

			code := "MISSING1"
			if tt.mutate != nil {
				tok := tt.mutate(Token{
					Code:        "VG2026AB",
					LeaderLabel: "Youth VG - North",
					ExpiresAt:   now.Add(time.Hour),
					IsActive:    true,
					MaxUses:     intPtr(2),
				})
				if _, err := store.Create(ctx, tok); err != nil {
					t.Fatalf("create token: %v", err)
				}
				code = tok.Code
			}

			if _, err := gate.Redeem(ctx, code); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Redeem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedeemNormalizesCode(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	issueTestToken(t, store, nil, now.Add(time.Hour))

	if _, err := gate.Redeem(ctx, "  vg2026ab "); err != nil {
		t.Fatalf("redeem with lowercase padded code: %v", err)
	}
}

func TestResetUsageRestoresService(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	issueTestToken(t, store, intPtr(1), now.Add(time.Hour))

	if _, err := gate.Redeem(ctx, "VG2026AB"); err != nil {
		t.Fatalf("first redemption: %v", err)
	}
	tok, err := gate.Redeem(ctx, "VG2026AB")
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("second redemption error = %v, want ErrLimitReached", err)
	}

	tok, err = store.FindByCode(ctx, "VG2026AB")
	if err != nil {
		t.Fatalf("find token: %v", err)
	}
	reset, err := gate.ResetUsage(ctx, tok)
	if err != nil {
		t.Fatalf("reset usage: %v", err)
	}
	if reset.UsedCount != 0 {
		t.Fatalf("used count after reset = %d, want 0", reset.UsedCount)
	}

	if _, err := gate.Redeem(ctx, "VG2026AB"); err != nil {
		t.Fatalf("redemption after reset: %v", err)
	}
}

func TestActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	tok := issueTestToken(t, store, nil, now.Add(time.Hour))

	deactivated, err := gate.Deactivate(ctx, tok)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("token still active after Deactivate")
	}
	if _, err := gate.Redeem(ctx, tok.Code); !errors.Is(err, ErrInactive) {
		t.Fatalf("redeem deactivated token error = %v, want ErrInactive", err)
	}

	if _, err := gate.Activate(ctx, tok); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := gate.Redeem(ctx, tok.Code); err != nil {
		t.Fatalf("redeem reactivated token: %v", err)
	}
}

func TestConcurrentRedemptionsRespectCap(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	const maxUses = 10
	const attempts = 40

	issueTestToken(t, store, intPtr(maxUses), now.Add(time.Hour))

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gate.Redeem(ctx, "VG2026AB")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, limitFailures int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrLimitReached):
			limitFailures++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}

	if successes != maxUses {
		t.Fatalf("successes = %d, want %d", successes, maxUses)
	}
	if limitFailures != attempts-maxUses {
		t.Fatalf("limit failures = %d, want %d", limitFailures, attempts-maxUses)
	}

	tok, err := store.FindByCode(ctx, "VG2026AB")
	if err != nil {
		t.Fatalf("find token: %v", err)
	}
	if tok.UsedCount != maxUses {
		t.Fatalf("final used count = %d, want %d", tok.UsedCount, maxUses)
	}
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	tok, err := gate.Issue(ctx, IssueInput{
		LeaderLabel: "Singles VG - East",
		Description: "Q1 status updates",
		ExpiresAt:   now.Add(14 * 24 * time.Hour),
		MaxUses:     intPtr(4),
		CreatedBy:   "admin@church.local",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if len(tok.Code) != DefaultCodeLength {
		t.Fatalf("code length = %d, want %d", len(tok.Code), DefaultCodeLength)
	}
	if tok.Code != strings.ToUpper(tok.Code) {
		t.Fatalf("code %q is not uppercase", tok.Code)
	}
	if tok.UsedCount != 0 {
		t.Fatalf("fresh token used count = %d, want 0", tok.UsedCount)
	}
	if !tok.IsActive {
		t.Fatal("fresh token is not active")
	}

	if _, err := gate.Issue(ctx, IssueInput{ExpiresAt: now}); err == nil {
		t.Fatal("issue without leader label succeeded")
	}
}

// Pre-creating a token that is already expired is allowed; it simply
// starts out non-redeemable.
func TestIssueAlreadyExpired(t *testing.T) {
	ctx := context.Background()
	now, clock := testClock(t)
	store := NewMemoryStore()
	gate := NewGate(store, clock)

	tok, err := gate.Issue(ctx, IssueInput{
		LeaderLabel: "Archive",
		ExpiresAt:   now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	if tok.StateAt(now) != StateExpired {
		t.Fatalf("state = %v, want StateExpired", tok.StateAt(now))
	}
	if _, err := gate.Redeem(ctx, tok.Code); !errors.Is(err, ErrExpired) {
		t.Fatalf("redeem error = %v, want ErrExpired", err)
	}
}
