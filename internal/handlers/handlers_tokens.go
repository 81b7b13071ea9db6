package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/android19/discipleship-form-sub001/internal/metrics"
	"github.com/android19/discipleship-form-sub001/internal/token"
)

type tokenResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	LeaderLabel   string    `json:"leader_label"`
	Description   string    `json:"description,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
	IsActive      bool      `json:"is_active"`
	MaxUses       *int      `json:"max_uses"`
	UsedCount     int       `json:"used_count"`
	RemainingUses *int      `json:"remaining_uses"`
	State         string    `json:"state"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newTokenResponse(tok token.Token, now time.Time) tokenResponse {
	resp := tokenResponse{
		ID:          tok.ID,
		Code:        tok.Code,
		LeaderLabel: tok.LeaderLabel,
		Description: tok.Description,
		ExpiresAt:   tok.ExpiresAt,
		IsActive:    tok.IsActive,
		MaxUses:     tok.MaxUses,
		UsedCount:   tok.UsedCount,
		State:       tok.StateAt(now).Label(),
		CreatedBy:   tok.CreatedBy,
		CreatedAt:   tok.CreatedAt,
		UpdatedAt:   tok.UpdatedAt,
	}
	if remaining, limited := tok.RemainingUses(); limited {
		resp.RemainingUses = &remaining
	}
	return resp
}

func (a *API) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeaderLabel string    `json:"leader_label"`
		Description string    `json:"description"`
		ExpiresAt   time.Time `json:"expires_at"`
		MaxUses     *int      `json:"max_uses"`
		CreatedBy   string    `json:"created_by"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.ExpiresAt.IsZero() {
		respondError(w, http.StatusBadRequest, errors.New("expires_at is required"))
		return
	}
	if req.MaxUses != nil && *req.MaxUses < 1 {
		respondError(w, http.StatusBadRequest, errors.New("max_uses must be positive when set"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tok, err := a.gate.Issue(ctx, token.IssueInput{
		LeaderLabel: req.LeaderLabel,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		MaxUses:     req.MaxUses,
		CreatedBy:   req.CreatedBy,
		CodeLength:  a.config.CodeLength,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.TokensIssuedTotal.Inc()
	log.Info().Str("code", tok.Code).Str("leader", tok.LeaderLabel).Msg("token issued")
	respondJSON(w, http.StatusCreated, map[string]any{"token": newTokenResponse(tok, a.now())})
}

func (a *API) handleListTokens(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tokens, err := token.NewGormStore(a.orm).List(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	now := a.now()
	out := make([]tokenResponse, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, newTokenResponse(tok, now))
	}
	respondJSON(w, http.StatusOK, map[string]any{"tokens": out})
}

func (a *API) handleGetToken(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tok, err := token.NewGormStore(a.orm).FindByID(ctx, id)
	if errors.Is(err, token.ErrNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": newTokenResponse(tok, a.now())})
}

func (a *API) handleUpdateToken(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		LeaderLabel *string    `json:"leader_label"`
		Description *string    `json:"description"`
		ExpiresAt   *time.Time `json:"expires_at"`
		IsActive    *bool      `json:"is_active"`
		MaxUses     *int       `json:"max_uses"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	fields := map[string]any{}
	if req.LeaderLabel != nil {
		fields["leader_label"] = *req.LeaderLabel
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ExpiresAt != nil {
		fields["expires_at"] = *req.ExpiresAt
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.MaxUses != nil {
		if *req.MaxUses < 1 {
			respondError(w, http.StatusBadRequest, errors.New("max_uses must be positive when set"))
			return
		}
		fields["max_uses"] = req.MaxUses
	}
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tok, err := token.NewGormStore(a.orm).Update(ctx, id, fields)
	if errors.Is(err, token.ErrNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": newTokenResponse(tok, a.now())})
}

func (a *API) handleDeleteToken(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	err = token.NewGormStore(a.orm).Delete(ctx, id)
	if errors.Is(err, token.ErrNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleActivateToken(w http.ResponseWriter, r *http.Request) {
	a.toggleToken(w, r, true)
}

func (a *API) handleDeactivateToken(w http.ResponseWriter, r *http.Request) {
	a.toggleToken(w, r, false)
}

func (a *API) toggleToken(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	store := token.NewGormStore(a.orm)
	tok, err := store.FindByID(ctx, id)
	if errors.Is(err, token.ErrNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if active {
		tok, err = a.gate.Activate(ctx, tok)
	} else {
		tok, err = a.gate.Deactivate(ctx, tok)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": newTokenResponse(tok, a.now())})
}

func (a *API) handleResetTokenUsage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	store := token.NewGormStore(a.orm)
	tok, err := store.FindByID(ctx, id)
	if errors.Is(err, token.ErrNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	tok, err = a.gate.ResetUsage(ctx, tok)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	log.Info().Str("code", tok.Code).Msg("token usage reset")
	respondJSON(w, http.StatusOK, map[string]any{"token": newTokenResponse(tok, a.now())})
}
