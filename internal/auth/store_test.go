package auth

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"genovault/internal/constants"
	"genovault/internal/database"
)

// setupTestDB creates an in-memory SQLite database with the application schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(database.GetSchema()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(setupTestDB(t))
}

func TestCreateUser(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.CreateUser("Admin@Example.com", "Admin", "salt:key", constants.RoleAdmin, false)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == "" {
		t.Error("expected non-empty user id")
	}
	if user.Email != "admin@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != constants.RoleAdmin {
		t.Errorf("expected admin role, got %q", user.Role)
	}
	if !user.IsActive {
		t.Error("expected user to be active")
	}
	if user.IsBootstrap {
		t.Error("expected user not to be bootstrap")
	}
	if user.CreatedAt == 0 {
		t.Error("expected non-zero created_at")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.CreateUser("dup@example.com", "One", "h1", constants.RoleAdmin, false); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}
	if _, err := store.CreateUser("DUP@example.com", "Two", "h2", constants.RoleAdmin, false); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

func TestGetUserByEmail(t *testing.T) {
	store := setupTestStore(t)

	created, err := store.CreateUser("lookup@example.com", "Lookup", "salt:key", constants.RoleAdmin, false)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := store.GetUserByEmail("  LOOKUP@Example.COM ")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, user.ID)
	}
	if user.PasswordHash != "salt:key" {
		t.Errorf("expected stored password record, got %q", user.PasswordHash)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.GetUserByEmail("missing@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestRecordFailedLoginBelowThreshold(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("a@example.com", "A", "h", constants.RoleAdmin, false)

	count, lockedUntil, err := store.RecordFailedLogin(user.ID, 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("RecordFailedLogin failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if lockedUntil != nil {
		t.Error("expected no lock below threshold")
	}
}

func TestRecordFailedLoginLocksAtThreshold(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("b@example.com", "B", "h", constants.RoleAdmin, false)

	var count int
	var lockedUntil *int64
	var err error
	for i := 0; i < 5; i++ {
		count, lockedUntil, err = store.RecordFailedLogin(user.ID, 5, 15*time.Minute)
		if err != nil {
			t.Fatalf("RecordFailedLogin %d failed: %v", i+1, err)
		}
	}

	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
	if lockedUntil == nil {
		t.Fatal("expected lock at threshold")
	}
	if *lockedUntil <= time.Now().Unix() {
		t.Error("expected lock expiry in the future")
	}
}

func TestRecordSuccessfulLoginResetsCounter(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("c@example.com", "C", "h", constants.RoleAdmin, false)

	for i := 0; i < 3; i++ {
		if _, _, err := store.RecordFailedLogin(user.ID, 5, 15*time.Minute); err != nil {
			t.Fatalf("RecordFailedLogin failed: %v", err)
		}
	}

	if err := store.RecordSuccessfulLogin(user.ID); err != nil {
		t.Fatalf("RecordSuccessfulLogin failed: %v", err)
	}

	fresh, err := store.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if fresh.FailedLoginCount != 0 {
		t.Errorf("expected counter reset, got %d", fresh.FailedLoginCount)
	}
	if fresh.LockedUntil != nil {
		t.Error("expected lock cleared")
	}
	if fresh.LastLoginAt == nil {
		t.Error("expected last_login_at stamped")
	}
}

func TestClearExpiredLock(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("d@example.com", "D", "h", constants.RoleAdmin, false)

	// Manufacture an already-expired lock
	past := time.Now().Add(-time.Minute).Unix()
	if _, err := store.db.Exec(
		`UPDATE users SET failed_login_count = 5, locked_until = ? WHERE id = ?`, past, user.ID,
	); err != nil {
		t.Fatalf("failed to seed expired lock: %v", err)
	}

	if err := store.ClearExpiredLock(user.ID); err != nil {
		t.Fatalf("ClearExpiredLock failed: %v", err)
	}

	fresh, _ := store.GetUserByID(user.ID)
	if fresh.FailedLoginCount != 0 || fresh.LockedUntil != nil {
		t.Error("expected expired lock cleared")
	}
}

func TestClearExpiredLockLeavesActiveLock(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("e@example.com", "E", "h", constants.RoleAdmin, false)

	future := time.Now().Add(10 * time.Minute).Unix()
	if _, err := store.db.Exec(
		`UPDATE users SET failed_login_count = 5, locked_until = ? WHERE id = ?`, future, user.ID,
	); err != nil {
		t.Fatalf("failed to seed active lock: %v", err)
	}

	if err := store.ClearExpiredLock(user.ID); err != nil {
		t.Fatalf("ClearExpiredLock failed: %v", err)
	}

	fresh, _ := store.GetUserByID(user.ID)
	if fresh.LockedUntil == nil {
		t.Error("active lock must not be cleared")
	}
}

func TestSetActive(t *testing.T) {
	store := setupTestStore(t)
	user, _ := store.CreateUser("f@example.com", "F", "h", constants.RoleAdmin, false)

	if err := store.SetActive(user.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	fresh, _ := store.GetUserByID(user.ID)
	if fresh.IsActive {
		t.Error("expected user deactivated")
	}

	if err := store.SetActive("missing-id", false); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestBootstrap(t *testing.T) {
	store := setupTestStore(t)
	log := testLogger(t)

	result, err := Bootstrap(store, log)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected bootstrap credentials")
	}
	if result.Email != constants.AuthBootstrapEmail {
		t.Errorf("unexpected bootstrap email: %s", result.Email)
	}
	if result.Password == "" {
		t.Error("expected generated password")
	}

	user, err := store.GetUserByEmail(result.Email)
	if err != nil || user == nil {
		t.Fatalf("bootstrap user not found: %v", err)
	}
	if !user.IsBootstrap {
		t.Error("expected is_bootstrap set")
	}
	if !VerifyPassword(result.Password, user.PasswordHash) {
		t.Error("generated password does not verify against stored record")
	}

	// Second call is a no-op
	again, err := Bootstrap(store, log)
	if err != nil {
		t.Fatalf("second Bootstrap failed: %v", err)
	}
	if again != nil {
		t.Fatal("expected nil result when users already exist")
	}
}
