package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/coerce"
	"github.com/android19/discipleship-form-sub001/internal/metrics"
	"github.com/android19/discipleship-form-sub001/internal/models"
	"github.com/android19/discipleship-form-sub001/internal/token"
	"github.com/android19/discipleship-form-sub001/pkg/bus"
)

// The public surface never distinguishes unknown codes from invalid
// ones, so callers cannot probe which codes exist.
var errInvalidCode = errors.New("invalid code")

func redemptionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, token.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, token.ErrInactive):
		return metrics.OutcomeInactive
	case errors.Is(err, token.ErrExpired):
		return metrics.OutcomeExpired
	case errors.Is(err, token.ErrLimitReached):
		return metrics.OutcomeLimitReached
	default:
		return ""
	}
}

// handleValidateCode checks a code without consuming a use, so the
// form page can gate entry. Validity is re-checked at submission time;
// this check is advisory only.
func (a *API) handleValidateCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tok, err := a.gate.Validate(ctx, req.Code)
	if err != nil {
		if outcome := redemptionOutcome(err); outcome != "" {
			log.Info().Str("reason", outcome).Msg("form access code rejected")
			respondError(w, http.StatusUnprocessableEntity, errInvalidCode)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	resp := map[string]any{
		"valid":        true,
		"leader_label": tok.LeaderLabel,
	}
	if remaining, limited := tok.RemainingUses(); limited {
		resp["remaining_uses"] = remaining
	}
	respondJSON(w, http.StatusOK, resp)
}

// handlePublicSubmission stores an anonymous status update. The token
// is redeemed inside the same transaction that stores the submission:
// the conditional usage increment and the insert commit or roll back
// together, so no partial redemption is ever observable.
func (a *API) handlePublicSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string         `json:"code"`
		Payload map[string]any `json:"payload"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Payload == nil {
		respondError(w, http.StatusBadRequest, errors.New("payload is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	fields, err := a.checkboxFields(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	// Coercion runs before any payload validation so raw checkbox
	// strings never trip boolean type checks downstream.
	payload, err := json.Marshal(coerce.Payload(req.Payload, fields))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var (
		redeemed   token.Token
		submission models.Submission
	)
	txErr := a.orm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gate := token.NewGate(token.NewGormStore(tx), a.now)
		tok, err := gate.Redeem(ctx, req.Code)
		if err != nil {
			return err
		}
		redeemed = tok

		submission = models.Submission{
			FormTokenID: &tok.ID,
			LeaderLabel: tok.LeaderLabel,
			Status:      models.SubmissionStatusSubmitted,
			Payload:     datatypes.JSON(payload),
			SubmittedAt: a.now().UTC(),
		}
		return tx.Create(&submission).Error
	})

	outcome := redemptionOutcome(txErr)
	if outcome != "" {
		metrics.RedemptionsTotal.WithLabelValues(outcome).Inc()
	}

	if txErr != nil {
		if outcome != "" && outcome != metrics.OutcomeSuccess {
			log.Info().Str("reason", outcome).Msg("public submission rejected")
			respondError(w, http.StatusUnprocessableEntity, errInvalidCode)
			return
		}
		respondError(w, http.StatusInternalServerError, txErr)
		return
	}

	metrics.SubmissionsTotal.Inc()
	a.publishEvents(redeemed, submission)
	a.notifier.SubmissionReceived(redeemed.LeaderLabel, redeemed.Code)

	log.Info().
		Str("code", redeemed.Code).
		Int("used_count", redeemed.UsedCount).
		Msg("submission stored")

	resp := map[string]any{"submission_id": submission.ID}
	if remaining, limited := redeemed.RemainingUses(); limited {
		resp["remaining_uses"] = remaining
	}
	respondJSON(w, http.StatusCreated, resp)
}

// checkboxFields returns the class keys the coercion step applies to,
// ordered by class position.
func (a *API) checkboxFields(ctx context.Context) ([]string, error) {
	var keys []string
	err := a.orm.WithContext(ctx).
		Model(&models.DiscipleshipClass{}).
		Order("position").
		Pluck("key", &keys).Error
	return keys, err
}

func (a *API) publishEvents(tok token.Token, submission models.Submission) {
	ctx, cancel := withTimeout(context.Background())
	defer cancel()

	if err := a.bus.Publish(ctx, bus.SubjectTokenRedeemed, map[string]any{
		"token_id":   tok.ID,
		"code":       tok.Code,
		"used_count": tok.UsedCount,
	}); err != nil {
		log.Warn().Err(err).Msg("publish token redeemed event")
	}

	if err := a.bus.Publish(ctx, bus.SubjectSubmissionReceived, map[string]any{
		"submission_id": submission.ID,
		"leader_label":  submission.LeaderLabel,
	}); err != nil {
		log.Warn().Err(err).Msg("publish submission received event")
	}
}
