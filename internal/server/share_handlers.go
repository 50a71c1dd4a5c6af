package server

import (
	"encoding/json"
	"net/http"

	"genovault/internal/constants"
	"genovault/internal/services"
)

// POST /api/share-report — create a share link
func (s *Server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	identity := s.requireAuth(w, r)
	if identity == nil {
		return
	}

	var req struct {
		ReportID      string `json:"reportId"`
		PatientID     string `json:"patientId"`
		Password      string `json:"password"`
		ExpiresInDays *int   `json:"expiresInDays"`
		MaxViews      *int   `json:"maxViews"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON", constants.ErrCodeInvalidRequest)
		return
	}

	result, err := s.app.Services.Share.Create(services.CreateInput{
		ReportID:      req.ReportID,
		PatientID:     req.PatientID,
		Password:      req.Password,
		ExpiresInDays: req.ExpiresInDays,
		MaxViews:      req.MaxViews,
		CreatedBy:     &identity.Email,
	}, getClientIP(r))
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"shareToken": result,
	})
}

// GET /api/share-report?reportId=…|patientId=… — list active share links
func (s *Server) handleShareList(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	items, err := s.app.Services.Share.List(
		r.URL.Query().Get("reportId"),
		r.URL.Query().Get("patientId"),
	)
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":     true,
		"shareTokens": items,
	})
}

// DELETE /api/share-report?tokenId=… — revoke a share link
func (s *Server) handleShareRevoke(w http.ResponseWriter, r *http.Request) {
	identity := s.requireAuth(w, r)
	if identity == nil {
		return
	}

	shareID := r.URL.Query().Get("tokenId")
	if err := s.app.Services.Share.Revoke(shareID, identity, getClientIP(r)); err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": constants.ShareMsgRevoked,
	})
}

// POST /api/shared-access — public report access by share token
func (s *Server) handleSharedAccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON", constants.ErrCodeInvalidRequest)
		return
	}

	result, err := s.app.Services.Share.Access(req.Token, req.Password, getClientIP(r), r.UserAgent())
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":   true,
		"report":    result.Report,
		"shareInfo": result.ShareInfo,
	})
}
