package services

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"genovault/internal/audit"
	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/database"
	"genovault/internal/logger"
	"genovault/internal/reports"
	"genovault/internal/share"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db      *sql.DB
	cfg     *config.Config
	users   *auth.Store
	shares  *share.Store
	reports *reports.Store
	codec   *share.TokenCodec
	auth    *AuthService
	share   *ShareService
	report  *ReportService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(database.GetSchema()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.JWTSecret = []byte("test-secret-at-least-32-characters!!")
	cfg.EncryptionKey = make([]byte, constants.ShareEncryptionKeyBytes)
	cfg.BaseURL = "http://localhost:3000"

	log := logger.NewLogger(logger.LevelError)
	auditLog := audit.NewLogger(db, 0, 0)
	t.Cleanup(auditLog.Stop)

	users := auth.NewStore(db)
	shares := share.NewStore(db)
	reportStore := reports.NewStore(db)

	sessions := auth.NewSessionManager(cfg.JWTSecret,
		cfg.Auth.AccessTokenDuration(), cfg.Auth.RefreshTokenDuration(), false)

	codec, err := share.NewTokenCodec(cfg.EncryptionKey)
	if err != nil {
		t.Fatalf("failed to create token codec: %v", err)
	}

	return &testEnv{
		db:      db,
		cfg:     cfg,
		users:   users,
		shares:  shares,
		reports: reportStore,
		codec:   codec,
		auth:    NewAuthService(users, sessions, auditLog, log, cfg),
		share:   NewShareService(shares, reportStore, codec, auditLog, log, cfg),
		report:  NewReportService(reportStore, log),
	}
}

// seedUser creates an active admin with a known password.
func (e *testEnv) seedUser(t *testing.T, email, password string) *auth.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user, err := e.users.CreateUser(email, "Test User", hash, constants.RoleAdmin, false)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// seedReport creates a patient and report pair.
func (e *testEnv) seedReport(t *testing.T) (*reports.Patient, *reports.Report) {
	t.Helper()
	patient, err := e.reports.CreatePatient(&reports.Patient{Name: "Jane Roe"})
	if err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}
	report, err := e.reports.CreateReport(patient.ID, "quote", "description",
		json.RawMessage(`{"title":"Report"}`))
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}
	return patient, report
}

// requireCode asserts err is a ServiceError with the given code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	got, ok := IsServiceError(err)
	if !ok {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}
