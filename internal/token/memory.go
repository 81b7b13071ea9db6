package token

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store used by tests and
// local tooling. The mutex gives it the same serialized-increment
// behavior the conditional UPDATE gives the postgres store.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]Token
	codes  map[string]uuid.UUID
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[uuid.UUID]Token),
		codes:  make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) FindByCode(_ context.Context, code string) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.codes[code]
	if !ok {
		return Token{}, ErrNotFound
	}
	return s.tokens[id], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[id]
	if !ok {
		return Token{}, ErrNotFound
	}
	return tok, nil
}

func (s *MemoryStore) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.codes[code]
	return ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := make([]Token, 0, len(s.tokens))
	for _, tok := range s.tokens {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].CreatedAt.After(tokens[j].CreatedAt)
	})
	return tokens, nil
}

func (s *MemoryStore) Create(_ context.Context, tok Token) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[tok.Code]; ok {
		return Token{}, ErrDuplicateCode
	}
	if tok.ID == uuid.Nil {
		tok.ID = uuid.New()
	}
	now := time.Now().UTC()
	tok.CreatedAt = now
	tok.UpdatedAt = now

	s.tokens[tok.ID] = tok
	s.codes[tok.Code] = tok.ID
	return tok, nil
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fields map[string]any) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[id]
	if !ok {
		return Token{}, ErrNotFound
	}

	for name, value := range fields {
		switch name {
		case "leader_label":
			tok.LeaderLabel = value.(string)
		case "description":
			tok.Description = value.(string)
		case "expires_at":
			tok.ExpiresAt = value.(time.Time)
		case "is_active":
			tok.IsActive = value.(bool)
		case "max_uses":
			tok.MaxUses = value.(*int)
		case "used_count":
			tok.UsedCount = value.(int)
		}
	}
	tok.UpdatedAt = time.Now().UTC()

	s.tokens[id] = tok
	return tok, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.codes, tok.Code)
	delete(s.tokens, id)
	return nil
}

func (s *MemoryStore) IncrementUsage(_ context.Context, id uuid.UUID) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[id]
	if !ok {
		return Token{}, ErrNotFound
	}
	if tok.HasReachedLimit() {
		return Token{}, ErrLimitReached
	}
	tok.UsedCount++
	tok.UpdatedAt = time.Now().UTC()

	s.tokens[id] = tok
	return tok, nil
}

func (s *MemoryStore) ResetUsage(ctx context.Context, id uuid.UUID) (Token, error) {
	return s.Update(ctx, id, map[string]any{"used_count": 0})
}
