package handlers

import "net/http"

func (a *API) handleTokenUsageReport(w http.ResponseWriter, r *http.Request) {
	rows, err := a.reporter.TokenUsageReport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tokens": rows})
}

func (a *API) handleLeaderActivityReport(w http.ResponseWriter, r *http.Request) {
	rows, err := a.reporter.LeaderActivityReport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaders": rows})
}
