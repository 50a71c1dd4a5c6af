package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"genovault/internal/constants"
)

// SessionClaims are the JWT claims carried by both access and refresh
// tokens. Refresh tokens additionally set TokenType to "refresh" so they
// can never be presented as access tokens.
type SessionClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"tokenType,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session tokens and manages the
// corresponding cookies.
type SessionManager struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	secureCookies   bool
}

// NewSessionManager creates a session manager. secureCookies should be true
// in production so cookies are only sent over HTTPS.
func NewSessionManager(secret []byte, accessDuration, refreshDuration time.Duration, secureCookies bool) *SessionManager {
	return &SessionManager{
		secret:          secret,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		secureCookies:   secureCookies,
	}
}

// IssueAccessToken signs a short-lived access token for the user.
func (sm *SessionManager) IssueAccessToken(user *User) (string, error) {
	return sm.sign(user, "", sm.accessDuration)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (sm *SessionManager) IssueRefreshToken(user *User) (string, error) {
	return sm.sign(user, constants.AuthTokenTypeRefresh, sm.refreshDuration)
}

func (sm *SessionManager) sign(user *User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken parses and validates an access token. Refresh tokens
// are rejected here.
func (sm *SessionManager) VerifyAccessToken(tokenString string) (*SessionClaims, error) {
	claims, err := sm.verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType == constants.AuthTokenTypeRefresh {
		return nil, fmt.Errorf("refresh token presented as access token")
	}
	return claims, nil
}

// VerifyRefreshToken parses and validates a refresh token.
func (sm *SessionManager) VerifyRefreshToken(tokenString string) (*SessionClaims, error) {
	claims, err := sm.verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != constants.AuthTokenTypeRefresh {
		return nil, fmt.Errorf("access token presented as refresh token")
	}
	return claims, nil
}

func (sm *SessionManager) verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// SetSessionCookies writes the access and refresh token cookies on the
// response. Both are HttpOnly with SameSite=Lax, Secure in production.
func (sm *SessionManager) SetSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.CookieAccessToken,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(sm.accessDuration.Seconds()),
		HttpOnly: true,
		Secure:   sm.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     constants.CookieRefreshToken,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(sm.refreshDuration.Seconds()),
		HttpOnly: true,
		Secure:   sm.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires both session cookies.
func (sm *SessionManager) ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{constants.CookieAccessToken, constants.CookieRefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   sm.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
