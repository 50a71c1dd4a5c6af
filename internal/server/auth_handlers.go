package server

import (
	"encoding/json"
	"net/http"

	"genovault/internal/auth"
	"genovault/internal/constants"
)

// POST /api/auth/login — authenticate and receive session cookies
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON", constants.ErrCodeInvalidRequest)
		return
	}

	result, err := s.app.Services.Auth.Login(req.Email, req.Password, getClientIP(r), r.UserAgent())
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	s.app.Sessions.SetSessionCookies(w, result.AccessToken, result.RefreshToken)

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    result.User,
	})
}

// POST /api/auth/logout — clear session cookies
//
// Logout is idempotent: expired or absent cookies still get a success
// response with the cookies cleared. The identity, when resolvable, only
// feeds the audit record.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	var identity *auth.Identity
	if cookie, err := r.Cookie(constants.CookieAccessToken); err == nil && cookie.Value != "" {
		if claims, err := s.app.Sessions.VerifyAccessToken(cookie.Value); err == nil {
			identity = &auth.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
		}
	}

	s.app.Services.Auth.Logout(identity, getClientIP(r))
	s.app.Sessions.ClearSessionCookies(w)

	if identity != nil {
		s.logger.Info("Auth: user %s logged out", identity.Email)
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
	})
}

// GET /api/auth/me — current user info
func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	identity := s.requireAuth(w, r)
	if identity == nil {
		return
	}

	user, err := s.app.Services.Auth.CurrentUser(identity.UserID)
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"user": user,
	})
}
