package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"genovault/internal/constants"
)

func testSessionManager(secure bool) *SessionManager {
	secret := []byte("test-secret-at-least-32-characters!!")
	return NewSessionManager(secret, 8*time.Hour, 7*24*time.Hour, secure)
}

func testUser() *User {
	return &User{
		ID:    "user-1",
		Email: "admin@example.com",
		Role:  "admin",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	sm := testSessionManager(false)
	user := testUser()

	token, err := sm.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	claims, err := sm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken failed: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("expected user id %q, got %q", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, claims.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("expected role %q, got %q", user.Role, claims.Role)
	}
	if claims.TokenType != "" {
		t.Errorf("access token should not carry a token type, got %q", claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	sm := testSessionManager(false)

	token, err := sm.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	claims, err := sm.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken failed: %v", err)
	}
	if claims.TokenType != constants.AuthTokenTypeRefresh {
		t.Errorf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	sm := testSessionManager(false)
	user := testUser()

	refresh, err := sm.IssueRefreshToken(user)
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}
	if _, err := sm.VerifyAccessToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}

	access, err := sm.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	if _, err := sm.VerifyRefreshToken(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	sm := testSessionManager(false)

	token, err := sm.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := sm.VerifyAccessToken(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	sm := testSessionManager(false)
	other := NewSessionManager([]byte("another-secret-also-32-chars-long!!!"), time.Hour, time.Hour, false)

	token, err := sm.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	if _, err := other.VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret-at-least-32-characters!!")
	sm := NewSessionManager(secret, -time.Minute, -time.Minute, false)

	token, err := sm.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	if _, err := sm.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSetSessionCookies(t *testing.T) {
	sm := testSessionManager(true)
	rec := httptest.NewRecorder()

	sm.SetSessionCookies(rec, "access-value", "refresh-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}

	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	access := byName[constants.CookieAccessToken]
	if access == nil {
		t.Fatal("missing access token cookie")
	}
	if access.Value != "access-value" {
		t.Errorf("unexpected access cookie value: %q", access.Value)
	}
	if !access.HttpOnly {
		t.Error("access cookie must be HttpOnly")
	}
	if !access.Secure {
		t.Error("access cookie must be Secure in production")
	}
	if access.SameSite != http.SameSiteLaxMode {
		t.Error("access cookie must be SameSite=Lax")
	}
	if access.Path != "/" {
		t.Errorf("access cookie path must be /, got %q", access.Path)
	}

	if byName[constants.CookieRefreshToken] == nil {
		t.Fatal("missing refresh token cookie")
	}
}

func TestClearSessionCookies(t *testing.T) {
	sm := testSessionManager(false)
	rec := httptest.NewRecorder()

	sm.ClearSessionCookies(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Value != "" {
			t.Errorf("cookie %s not cleared", c.Name)
		}
		if c.MaxAge >= 0 {
			t.Errorf("cookie %s not expired", c.Name)
		}
	}
}
