package token

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	// Exhaustive 2x2x2 table over {active, unexpired, under-limit}.
	tests := []struct {
		name      string
		active    bool
		expiresAt time.Time
		maxUses   *int
		usedCount int
		want      bool
	}{
		{name: "active unexpired under limit", active: true, expiresAt: future, maxUses: intPtr(3), usedCount: 1, want: true},
		{name: "active unexpired at limit", active: true, expiresAt: future, maxUses: intPtr(3), usedCount: 3},
		{name: "active expired under limit", active: true, expiresAt: past, maxUses: intPtr(3), usedCount: 1},
		{name: "active expired at limit", active: true, expiresAt: past, maxUses: intPtr(3), usedCount: 3},
		{name: "inactive unexpired under limit", active: false, expiresAt: future, maxUses: intPtr(3), usedCount: 1},
		{name: "inactive unexpired at limit", active: false, expiresAt: future, maxUses: intPtr(3), usedCount: 3},
		{name: "inactive expired under limit", active: false, expiresAt: past, maxUses: intPtr(3), usedCount: 1},
		{name: "inactive expired at limit", active: false, expiresAt: past, maxUses: intPtr(3), usedCount: 3},
		{name: "unlimited active unexpired", active: true, expiresAt: future, usedCount: 5000, want: true},
		{name: "unlimited inactive", active: false, expiresAt: future, usedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Token{
				IsActive:  tt.active,
				ExpiresAt: tt.expiresAt,
				MaxUses:   tt.maxUses,
				UsedCount: tt.usedCount,
			}
			if got := tok.Valid(now); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	exact := Token{IsActive: true, ExpiresAt: now}
	if exact.Expired(now) {
		t.Fatal("expiry equal to now must still be valid")
	}
	if !exact.Valid(now) {
		t.Fatal("token expiring exactly now must be valid")
	}

	justPast := Token{IsActive: true, ExpiresAt: now.Add(-time.Second)}
	if !justPast.Expired(now) {
		t.Fatal("expiry one second in the past must be invalid")
	}
}

func TestRemainingUses(t *testing.T) {
	if _, limited := (Token{}).RemainingUses(); limited {
		t.Fatal("uncapped token reported a limit")
	}

	tok := Token{MaxUses: intPtr(5), UsedCount: 2}
	if remaining, limited := tok.RemainingUses(); !limited || remaining != 3 {
		t.Fatalf("RemainingUses() = %d, %v, want 3, true", remaining, limited)
	}

	// Operator edits can lower max_uses below used_count; remaining
	// clamps at zero rather than going negative.
	over := Token{MaxUses: intPtr(2), UsedCount: 7}
	if remaining, _ := over.RemainingUses(); remaining != 0 {
		t.Fatalf("RemainingUses() = %d, want 0", remaining)
	}
}

func TestStateLabels(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{name: "active", tok: Token{IsActive: true, ExpiresAt: future}, want: "Active"},
		{name: "inactive", tok: Token{IsActive: false, ExpiresAt: future}, want: "Inactive"},
		{name: "expired", tok: Token{IsActive: true, ExpiresAt: now.Add(-time.Minute)}, want: "Expired"},
		{name: "limit reached", tok: Token{IsActive: true, ExpiresAt: future, MaxUses: intPtr(1), UsedCount: 1}, want: "Limit Reached"},
		// Inactive wins over expired: the checks report the first
		// failing condition in order.
		{name: "inactive and expired", tok: Token{IsActive: false, ExpiresAt: now.Add(-time.Minute)}, want: "Inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.StateAt(now).Label(); got != tt.want {
				t.Fatalf("StateAt().Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
