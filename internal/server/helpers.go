package server

import (
	"net/http"
	"strings"

	"genovault/internal/auth"
	"genovault/internal/constants"
)

// getClientIP extracts the client IP address from the request
// It checks proxy headers first, then falls back to RemoteAddr
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (reverse proxy)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the chain (original client)
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// requireAuth extracts the authenticated identity placed by the gate.
// Returns nil and writes a 401 response if not authenticated.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) *auth.Identity {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Authentication required", constants.ErrCodeAuthRequired)
		return nil
	}
	return identity
}
