package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/android19/discipleship-form-sub001/internal/metrics"
	"github.com/android19/discipleship-form-sub001/internal/token"
)

func TestNewTokenResponse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maxUses := 5

	tok := token.Token{
		Code:        "VG2026AB",
		LeaderLabel: "Youth VG - North",
		ExpiresAt:   now.Add(time.Hour),
		IsActive:    true,
		MaxUses:     &maxUses,
		UsedCount:   2,
	}

	resp := newTokenResponse(tok, now)
	if resp.State != "Active" {
		t.Fatalf("state = %q, want Active", resp.State)
	}
	if resp.RemainingUses == nil || *resp.RemainingUses != 3 {
		t.Fatalf("remaining uses = %v, want 3", resp.RemainingUses)
	}

	unlimited := token.Token{ExpiresAt: now.Add(time.Hour), IsActive: true}
	if got := newTokenResponse(unlimited, now); got.RemainingUses != nil {
		t.Fatalf("unlimited token remaining uses = %v, want null", *got.RemainingUses)
	}

	capped := tok
	capped.UsedCount = 5
	if got := newTokenResponse(capped, now); got.State != "Limit Reached" {
		t.Fatalf("state = %q, want Limit Reached", got.State)
	}
}

func TestRedemptionOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: metrics.OutcomeSuccess},
		{name: "not found", err: token.ErrNotFound, want: metrics.OutcomeNotFound},
		{name: "inactive", err: token.ErrInactive, want: metrics.OutcomeInactive},
		{name: "expired", err: token.ErrExpired, want: metrics.OutcomeExpired},
		{name: "limit reached", err: token.ErrLimitReached, want: metrics.OutcomeLimitReached},
		{name: "storage failure", err: errors.New("connection reset"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redemptionOutcome(tt.err); got != tt.want {
				t.Fatalf("redemptionOutcome(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
