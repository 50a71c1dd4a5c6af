package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/database"
	"genovault/internal/logger"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery"
)

// newTestServer builds a Server over an in-memory database and a temp
// working directory, seeded with one admin account.
func newTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(database.GetSchema()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	workDir := t.TempDir()
	if err := config.InitializeWorkingDirectory(workDir); err != nil {
		t.Fatalf("failed to init working directory: %v", err)
	}

	cfg := &config.Config{WorkingDirectory: workDir}
	cfg.ApplyDefaults()
	cfg.JWTSecret = []byte("test-secret-at-least-32-characters!!")
	cfg.EncryptionKey = make([]byte, constants.ShareEncryptionKeyBytes)

	log := logger.NewLogger(logger.LevelError)

	app, err := NewApp(cfg, log, db)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(app.Close)

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := app.Users.CreateUser(testAdminEmail, "Admin", hash, constants.RoleAdmin, false); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	return NewServer(app), db
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, srv *Server, method, target string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// login authenticates the seeded admin and returns the session cookies.
func login(t *testing.T, srv *Server) []*http.Cookie {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookies")
	}
	return cookies
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}
