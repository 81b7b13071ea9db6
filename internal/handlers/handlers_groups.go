package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/models"
)

type groupRequest struct {
	Name     string     `json:"name"`
	LeaderID *uuid.UUID `json:"leader_id"`
	Schedule string     `json:"schedule"`
	Venue    string     `json:"venue"`
}

func (a *API) handleListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var groups []models.VictoryGroup
	if err := a.orm.WithContext(ctx).Preload("Leader").Order("name").Find(&groups).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"victory_groups": groups})
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var group models.VictoryGroup
	err = a.orm.WithContext(ctx).Preload("Leader").Preload("Members").First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("victory group not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"victory_group": group})
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
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

	group := models.VictoryGroup{
		Name:     req.Name,
		LeaderID: req.LeaderID,
		Schedule: strings.TrimSpace(req.Schedule),
		Venue:    strings.TrimSpace(req.Venue),
	}
	if err := a.orm.WithContext(ctx).Create(&group).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"victory_group": group})
}

func (a *API) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req groupRequest
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

	var group models.VictoryGroup
	err = a.orm.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("victory group not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]any{
		"name":      req.Name,
		"leader_id": req.LeaderID,
		"schedule":  strings.TrimSpace(req.Schedule),
		"venue":     strings.TrimSpace(req.Venue),
	}
	if err := a.orm.WithContext(ctx).Model(&group).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"victory_group": group})
}

func (a *API) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	res := a.orm.WithContext(ctx).Delete(&models.VictoryGroup{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, errors.New("victory group not found"))
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
