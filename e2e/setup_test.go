package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/database"
	"genovault/internal/logger"
	"genovault/internal/server"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse battery"
)

// TestServer wraps a running genovault server for testing
type TestServer struct {
	Server  *httptest.Server
	App     *server.App
	WorkDir string
	URL     string
}

// StartTestServer boots a server over a file-backed store in a temp
// working directory, seeded with one admin account.
func StartTestServer(t *testing.T) *TestServer {
	t.Helper()

	workDir := t.TempDir()
	if err := config.InitializeWorkingDirectory(workDir); err != nil {
		t.Fatalf("failed to init working directory: %v", err)
	}

	cfg := &config.Config{WorkingDirectory: workDir}
	cfg.ApplyDefaults()
	cfg.JWTSecret = []byte("e2e-secret-at-least-32-characters!!!")
	cfg.EncryptionKey = make([]byte, constants.ShareEncryptionKeyBytes)

	log := logger.NewLogger(logger.LevelError) // Suppress logs in tests

	db, err := database.InitStore(config.StorePath(workDir))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	app, err := server.NewApp(cfg, log, db)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(app.Close)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := app.Users.CreateUser(adminEmail, "Admin", hash, constants.RoleAdmin, false); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	srv := server.NewServer(app)
	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)

	return &TestServer{
		Server:  httpServer,
		App:     app,
		WorkDir: workDir,
		URL:     httpServer.URL,
	}
}

// Client returns an HTTP client with its own cookie jar.
func (ts *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// PostJSON sends a JSON POST and decodes the JSON response.
func PostJSON(t *testing.T, client *http.Client, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	resp, err := client.Post(url, constants.ContentTypeJSON, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeJSON(t, resp.Body)
}

// GetJSON sends a GET and decodes the JSON response.
func GetJSON(t *testing.T, client *http.Client, url string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeJSON(t, resp.Body)
}

// DoJSON sends a bodyless request with an arbitrary method.
func DoJSON(t *testing.T, client *http.Client, method, url string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeJSON(t, resp.Body)
}

func decodeJSON(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", string(data), err)
	}
	return body
}

// Login authenticates the seeded admin on the given client.
func (ts *TestServer) Login(t *testing.T, client *http.Client) {
	t.Helper()
	status, body := PostJSON(t, client, ts.URL+"/api/auth/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d: %v", status, body)
	}
}

// SaveReport pushes a minimal patient + report and returns their ids.
func (ts *TestServer) SaveReport(t *testing.T, client *http.Client) (string, string) {
	t.Helper()
	status, body := PostJSON(t, client, ts.URL+"/api/patients-data", map[string]interface{}{
		"patient":     map[string]string{"name": "Jane Roe", "gender": "female"},
		"quote":       "Your genes are not your destiny",
		"description": "Nutrigenomic overview",
		"sections": map[string]interface{}{
			"metabolic": []map[string]string{
				{"area": "Caffeine Metabolism", "name": "CYP1A2", "genotype": "AA", "impact": "fast", "advice": "Coffee is fine"},
			},
			"healthSummary": []map[string]string{
				{"section": "strengths", "title": "Efficient caffeine clearance"},
			},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("save report failed with status %d: %v", status, body)
	}
	patientID, _ := body["patientId"].(string)
	reportID, _ := body["reportId"].(string)
	if patientID == "" || reportID == "" {
		t.Fatalf("save returned no ids: %v", body)
	}
	return patientID, reportID
}

// APIURL builds an API URL with query parameters.
func (ts *TestServer) APIURL(path string, params ...string) string {
	url := ts.URL + path
	for i := 0; i+1 < len(params); i += 2 {
		sep := "&"
		if i == 0 {
			sep = "?"
		}
		url += fmt.Sprintf("%s%s=%s", sep, params[i], params[i+1])
	}
	return url
}
