package auth

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store provides access to user rows.
type Store struct {
	db *sql.DB
}

// NewStore creates a user store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userColumns = `id, email, name, password_hash, role, is_active, is_bootstrap,
	failed_login_count, locked_until, last_login_at, created_at, updated_at`

func scanUser(row *sql.Row) (*UserWithSensitive, error) {
	var u UserWithSensitive
	var isActive, isBootstrap int
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&isActive, &isBootstrap, &u.FailedLoginCount, &u.LockedUntil,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.IsActive = isActive != 0
	u.IsBootstrap = isBootstrap != 0
	return &u, nil
}

// GetUserByEmail looks up a user by email (case-insensitive).
// Returns (nil, nil) if no such user exists.
func (s *Store) GetUserByEmail(email string) (*UserWithSensitive, error) {
	row := s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID looks up a user by id. Returns (nil, nil) if no such user exists.
func (s *Store) GetUserByID(id string) (*UserWithSensitive, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user row. Email is stored lowercase.
func (s *Store) CreateUser(email, name, passwordHash, role string, isBootstrap bool) (*User, error) {
	now := time.Now().Unix()
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, password_hash, role, is_active, is_bootstrap, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		id, strings.ToLower(strings.TrimSpace(email)), name, passwordHash, role,
		boolToInt(isBootstrap), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &User{
		ID:          id,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Name:        name,
		Role:        role,
		IsActive:    true,
		IsBootstrap: isBootstrap,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CountUsers returns the total number of user rows.
func (s *Store) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// RecordFailedLogin atomically increments the failed-login counter and, if
// the new count reaches maxAttempts, sets locked_until. The increment, the
// threshold check, and the lock write happen in a single statement so that
// concurrent failures cannot each observe the pre-increment count.
// Returns the post-increment count and the lock expiry, if any.
func (s *Store) RecordFailedLogin(userID string, maxAttempts int, lockoutDuration time.Duration) (int, *int64, error) {
	lockUntil := time.Now().Add(lockoutDuration).Unix()
	now := time.Now().Unix()

	row := s.db.QueryRow(
		`UPDATE users
		 SET failed_login_count = failed_login_count + 1,
		     locked_until = CASE WHEN failed_login_count + 1 >= ? THEN ? ELSE locked_until END,
		     updated_at = ?
		 WHERE id = ?
		 RETURNING failed_login_count, locked_until`,
		maxAttempts, lockUntil, now, userID,
	)

	var count int
	var lockedUntil *int64
	if err := row.Scan(&count, &lockedUntil); err != nil {
		return 0, nil, fmt.Errorf("failed to record failed login: %w", err)
	}
	return count, lockedUntil, nil
}

// RecordSuccessfulLogin clears the failed-login counter and lock, and stamps
// last_login_at.
func (s *Store) RecordSuccessfulLogin(userID string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(
		`UPDATE users
		 SET failed_login_count = 0, locked_until = NULL, last_login_at = ?, updated_at = ?
		 WHERE id = ?`,
		now, now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to record successful login: %w", err)
	}
	return nil
}

// ClearExpiredLock resets the counter and lock for a user whose lock window
// has passed, so the next failure starts a fresh count.
func (s *Store) ClearExpiredLock(userID string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(
		`UPDATE users
		 SET failed_login_count = 0, locked_until = NULL, updated_at = ?
		 WHERE id = ? AND locked_until IS NOT NULL AND locked_until <= ?`,
		now, userID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to clear expired lock: %w", err)
	}
	return nil
}

// SetActive enables or disables a user account.
func (s *Store) SetActive(userID string, active bool) error {
	now := time.Now().Unix()
	res, err := s.db.Exec(
		`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user active state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
