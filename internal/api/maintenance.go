package api

import (
	"encoding/json"
	"net/http"

	"github.com/starford/raido/internal/models"
)

// AuditScope handles GET /api/audit.
//
//	@Summary		Audit one scope's position keys
//	@Description	Read-only: reports duplicate keys, key gaps, and unkeyed
//	@Description	entities without changing anything.
//	@Tags			maintenance
//	@Produce		json
//	@Param			scope	query		string	true	"Scope key, e.g. inbox or project:<id>"
//	@Success		200		{object}	ordering.Report
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/audit [get]
func (h *Handler) AuditScope(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("scope")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'scope' is required"))
		return
	}
	scope, err := models.ParseScopeID(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	report, err := h.svc.Audit(r.Context(), scope)
	if err != nil {
		writeServiceError(w, "audit scope", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Repair handles POST /api/repair. With a scope in the body only that
// scope is reindexed; with an empty body the full pass runs (bootstrap
// unkeyed entities, then reindex every corrupted scope).
//
//	@Summary		Repair ordering corruption
//	@Tags			maintenance
//	@Accept			json
//	@Param			body	body	RepairRequest	false	"Optional scope to repair"
//	@Success		204		"Repair complete"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/repair [post]
func (h *Handler) Repair(w http.ResponseWriter, r *http.Request) {
	var req RepairRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}

	var scope models.ScopeID
	if req.Scope != "" {
		var err error
		scope, err = models.ParseScopeID(req.Scope)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
	}
	if err := h.svc.Repair(r.Context(), scope); err != nil {
		writeServiceError(w, "repair", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
