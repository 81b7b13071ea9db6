package token

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateUniqueCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateUniqueCode(ctx, store, DefaultCodeLength)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != DefaultCodeLength {
			t.Fatalf("code length = %d, want %d", len(code), DefaultCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		if seen[code] {
			t.Fatalf("code %q generated twice against a seeded store", code)
		}
		seen[code] = true

		// Seed the store so the next iteration must avoid this code.
		if _, err := store.Create(ctx, Token{
			Code:        code,
			LeaderLabel: "seed",
			ExpiresAt:   time.Now().Add(time.Hour),
			IsActive:    true,
		}); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
}

func TestGenerateUniqueCodeDefaultsLength(t *testing.T) {
	code, err := GenerateUniqueCode(context.Background(), NewMemoryStore(), 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != DefaultCodeLength {
		t.Fatalf("code length = %d, want default %d", len(code), DefaultCodeLength)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  ab12cd34 "); got != "AB12CD34" {
		t.Fatalf("NormalizeCode() = %q, want AB12CD34", got)
	}
}
