package server

import (
	"net/http"
	"strconv"

	"genovault/internal/audit"
	"genovault/internal/constants"
)

// GET /api/audit — query the audit log (admin only, enforced by the gate)
func (s *Server) handleAuditQuery(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	query := r.URL.Query()
	filter := audit.QueryFilter{
		Action: query.Get("action"),
		Email:  query.Get("email"),
	}
	if filter.Action != "" && !audit.IsValidAction(filter.Action) {
		WriteError(w, http.StatusBadRequest, "Invalid action type", constants.ErrCodeInvalidRequest)
		return
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	entries, err := audit.Query(s.app.DB, filter)
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GET /api/audit/actions — the known audit action types
func (s *Server) handleAuditActions(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"actions": audit.ValidActions(),
	})
}
