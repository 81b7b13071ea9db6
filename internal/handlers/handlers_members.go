package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/coerce"
	"github.com/android19/discipleship-form-sub001/internal/models"
)

// Member class flags arrive from admin forms with the same checkbox
// wire values as the public form, so they run through the coercion
// allow-list too.
type memberRequest struct {
	Name           string     `json:"name"`
	VictoryGroupID *uuid.UUID `json:"victory_group_id"`

	One2One           any `json:"one2one"`
	VictoryWeekend    any `json:"victory_weekend"`
	ChurchCommunity   any `json:"church_community"`
	PurpleBook        any `json:"purple_book"`
	MakingDisciples   any `json:"making_disciples"`
	EmpoweringLeaders any `json:"empowering_leaders"`
}

func (req memberRequest) toModel() models.Member {
	return models.Member{
		Name:              strings.TrimSpace(req.Name),
		VictoryGroupID:    req.VictoryGroupID,
		One2One:           coerce.Bool(req.One2One),
		VictoryWeekend:    coerce.Bool(req.VictoryWeekend),
		ChurchCommunity:   coerce.Bool(req.ChurchCommunity),
		PurpleBook:        coerce.Bool(req.PurpleBook),
		MakingDisciples:   coerce.Bool(req.MakingDisciples),
		EmpoweringLeaders: coerce.Bool(req.EmpoweringLeaders),
	}
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var members []models.Member
	if err := a.orm.WithContext(ctx).Order("name").Find(&members).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (a *API) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var member models.Member
	err = a.orm.WithContext(ctx).Preload("VictoryGroup").First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("member not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"member": member})
}

func (a *API) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	member := req.toModel()
	if member.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.orm.WithContext(ctx).Create(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"member": member})
}

func (a *API) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	updated := req.toModel()
	if updated.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var member models.Member
	err = a.orm.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errors.New("member not found"))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]any{
		"name":               updated.Name,
		"victory_group_id":   updated.VictoryGroupID,
		"one2one":            updated.One2One,
		"victory_weekend":    updated.VictoryWeekend,
		"church_community":   updated.ChurchCommunity,
		"purple_book":        updated.PurpleBook,
		"making_disciples":   updated.MakingDisciples,
		"empowering_leaders": updated.EmpoweringLeaders,
	}
	if err := a.orm.WithContext(ctx).Model(&member).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"member": member})
}

func (a *API) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	res := a.orm.WithContext(ctx).Delete(&models.Member{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, errors.New("member not found"))
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
