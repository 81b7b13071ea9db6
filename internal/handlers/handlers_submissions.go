package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/coerce"
	"github.com/android19/discipleship-form-sub001/internal/metrics"
	"github.com/android19/discipleship-form-sub001/internal/models"
)

// handleCreateDirectSubmission stores a status update entered by an
// authenticated operator on a leader's behalf. No token is involved.
func (a *API) handleCreateDirectSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeaderID uuid.UUID      `json:"leader_id"`
		Payload  map[string]any `json:"payload"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.LeaderID == uuid.Nil {
		respondError(w, http.StatusBadRequest, errors.New("leader_id is required"))
		return
	}
	if req.Payload == nil {
		respondError(w, http.StatusBadRequest, errors.New("payload is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var leader models.Leader
	err := a.orm.WithContext(ctx).First(&leader, "id = ?", req.LeaderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("leader not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	fields, err := a.checkboxFields(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	payload, err := json.Marshal(coerce.Payload(req.Payload, fields))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	submission := models.Submission{
		LeaderID:    &leader.ID,
		LeaderLabel: leader.Name,
		Status:      models.SubmissionStatusSubmitted,
		Payload:     datatypes.JSON(payload),
		SubmittedAt: a.now().UTC(),
	}
	if err := a.orm.WithContext(ctx).Create(&submission).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.SubmissionsTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]any{"submission": submission})
}

func (a *API) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var submissions []models.Submission
	if err := a.orm.WithContext(ctx).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
}

func (a *API) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var submission models.Submission
	err = a.orm.WithContext(ctx).First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("submission not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"submission": submission})
}
