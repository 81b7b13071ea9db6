package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/models"
)

type leaderRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	MinistryID *uuid.UUID `json:"ministry_id"`
	CoachID    *uuid.UUID `json:"coach_id"`
}

func (a *API) handleListLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var leaders []models.Leader
	if err := a.orm.WithContext(ctx).Preload("Ministry").Preload("Coach").Order("name").Find(&leaders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaders": leaders})
}

func (a *API) handleGetLeader(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var leader models.Leader
	err = a.orm.WithContext(ctx).Preload("Ministry").Preload("Coach").Preload("VictoryGroups").First(&leader, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("leader not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leader": leader})
}

func (a *API) handleCreateLeader(w http.ResponseWriter, r *http.Request) {
	var req leaderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	leader := models.Leader{
		Name:       req.Name,
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		MinistryID: req.MinistryID,
		CoachID:    req.CoachID,
	}
	if err := a.orm.WithContext(ctx).Create(&leader).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"leader": leader})
}

func (a *API) handleUpdateLeader(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req leaderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var leader models.Leader
	err = a.orm.WithContext(ctx).First(&leader, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("leader not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]any{
		"name":        req.Name,
		"email":       strings.TrimSpace(req.Email),
		"phone":       strings.TrimSpace(req.Phone),
		"ministry_id": req.MinistryID,
		"coach_id":    req.CoachID,
	}
	if err := a.orm.WithContext(ctx).Model(&leader).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if err := a.orm.WithContext(ctx).First(&leader, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leader": leader})
}

func (a *API) handleDeleteLeader(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	res := a.orm.WithContext(ctx).Delete(&models.Leader{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, errors.New("leader not found"))
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
