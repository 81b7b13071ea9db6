package handlers

import (
	"net/http"

	"github.com/android19/discipleship-form-sub001/internal/models"
)

func (a *API) handleListMinistries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var ministries []models.Ministry
	if err := a.orm.WithContext(ctx).Order("name").Find(&ministries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ministries": ministries})
}

func (a *API) handleListClasses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var classes []models.DiscipleshipClass
	if err := a.orm.WithContext(ctx).Order("position").Find(&classes).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"classes": classes})
}
