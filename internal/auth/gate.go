package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"genovault/internal/constants"
	"genovault/internal/logger"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity stores the authenticated identity on the request context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the identity placed by the gate, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

// IdentityFromRequest is a convenience wrapper for handlers.
func IdentityFromRequest(r *http.Request) (*Identity, bool) {
	return IdentityFromContext(r.Context())
}

// Gate is the route-policy middleware. Every request passes through it;
// routes are classified in a fixed priority order and either let through,
// rejected, or redirected to the login page.
type Gate struct {
	sessions *SessionManager
	log      *logger.Logger
}

// NewGate creates the gate middleware.
func NewGate(sessions *SessionManager, log *logger.Logger) *Gate {
	return &Gate{sessions: sessions, log: log}
}

// isPublicPath reports whether the path requires no session at all.
// Static uploads and the shared-report surface come first so a stale
// session cookie can never lock a patient out of their shared link.
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/uploads/") {
		return true
	}
	if strings.HasPrefix(path, constants.SharedReportPathPrefix) {
		return true
	}
	switch path {
	case "/api/shared-access",
		constants.LoginPagePath,
		"/api/auth/login",
		"/api/auth/logout",
		"/api/info":
		return true
	}
	return false
}

// isAdminPath reports whether the path additionally requires the admin role.
func isAdminPath(path string) bool {
	switch {
	case strings.HasPrefix(path, "/api/share-report"),
		strings.HasPrefix(path, "/api/patients-data"),
		strings.HasPrefix(path, "/api/upload-image"),
		strings.HasPrefix(path, "/api/audit"):
		return true
	}
	return false
}

// Authenticate enforces the route policy. Authenticated requests continue
// with the identity on the context and X-User-* headers set for downstream
// handlers.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isPublicPath(path) {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := g.verifySessionCookie(r)
		if !ok {
			// Stale cookies are cleared so the browser stops presenting them
			g.sessions.ClearSessionCookies(w)
			g.denySession(w, r)
			return
		}

		identity := &Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}

		if isAdminPath(path) && !identity.IsAdmin() {
			g.log.Warn("Gate: non-admin %s denied for %s", identity.Email, path)
			g.denyRole(w, r)
			return
		}

		r.Header.Set(constants.HeaderUserID, identity.UserID)
		r.Header.Set(constants.HeaderUserEmail, identity.Email)
		r.Header.Set(constants.HeaderUserRole, identity.Role)

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (g *Gate) verifySessionCookie(r *http.Request) (*SessionClaims, bool) {
	cookie, err := r.Cookie(constants.CookieAccessToken)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := g.sessions.VerifyAccessToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// denySession rejects an unauthenticated request: JSON 401 for API calls,
// a redirect to the login page (preserving the destination) otherwise.
func (g *Gate) denySession(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeGateError(w, http.StatusUnauthorized, "Authentication required", constants.ErrCodeAuthRequired)
		return
	}
	redirect := constants.LoginPagePath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, redirect, http.StatusFound)
}

// denyRole rejects an authenticated but under-privileged request.
func (g *Gate) denyRole(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeGateError(w, http.StatusForbidden, "Admin access required", constants.ErrCodeAuthForbidden)
		return
	}
	http.Redirect(w, r, constants.HomePagePath, http.StatusFound)
}

// writeGateError mirrors the server package's error envelope. The gate
// cannot import the server package, so the small shape is repeated here.
func writeGateError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    code,
	})
}
