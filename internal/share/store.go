package share

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store provides access to share token rows.
type Store struct {
	db *sql.DB
}

// NewStore creates a share token store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const tokenColumns = `id, token, report_id, patient_id, password_hash, expires_at,
	max_views, view_count, is_active, created_by, created_at, last_accessed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*Token, error) {
	var t Token
	var isActive int
	err := row.Scan(&t.ID, &t.Token, &t.ReportID, &t.PatientID, &t.PasswordHash,
		&t.ExpiresAt, &t.MaxViews, &t.ViewCount, &isActive, &t.CreatedBy,
		&t.CreatedAt, &t.LastAccessedAt)
	if err != nil {
		return nil, err
	}
	t.IsActive = isActive != 0
	return &t, nil
}

// CreateParams holds the optional attributes of a new share link.
type CreateParams struct {
	Token        string
	ReportID     string
	PatientID    string
	PasswordHash *string
	ExpiresAt    *int64
	MaxViews     *int
	CreatedBy    *string
}

// Create persists a new active share token.
func (s *Store) Create(p CreateParams) (*Token, error) {
	id := uuid.NewString()
	now := time.Now().Unix()

	_, err := s.db.Exec(
		`INSERT INTO share_tokens (id, token, report_id, patient_id, password_hash,
		 expires_at, max_views, view_count, is_active, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, 1, ?, ?)`,
		id, p.Token, p.ReportID, p.PatientID, p.PasswordHash,
		p.ExpiresAt, p.MaxViews, p.CreatedBy, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create share token: %w", err)
	}

	return &Token{
		ID:           id,
		Token:        p.Token,
		ReportID:     p.ReportID,
		PatientID:    p.PatientID,
		PasswordHash: p.PasswordHash,
		ExpiresAt:    p.ExpiresAt,
		MaxViews:     p.MaxViews,
		IsActive:     true,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    now,
	}, nil
}

// GetByToken looks up a share token by its literal token string, active or
// not. Returns (nil, nil) if no such row exists.
func (s *Store) GetByToken(token string) (*Token, error) {
	row := s.db.QueryRow(`SELECT `+tokenColumns+` FROM share_tokens WHERE token = ?`, token)
	t, err := scanToken(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share token: %w", err)
	}
	return t, nil
}

// GetByID looks up a share token by row id. Returns (nil, nil) if no such
// row exists.
func (s *Store) GetByID(id string) (*Token, error) {
	row := s.db.QueryRow(`SELECT `+tokenColumns+` FROM share_tokens WHERE id = ?`, id)
	t, err := scanToken(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share token: %w", err)
	}
	return t, nil
}

// ListByReport returns active share tokens for a report, newest first.
func (s *Store) ListByReport(reportID string) ([]*Token, error) {
	return s.list(`report_id = ?`, reportID)
}

// ListByPatient returns active share tokens for a patient, newest first.
func (s *Store) ListByPatient(patientID string) ([]*Token, error) {
	return s.list(`patient_id = ?`, patientID)
}

func (s *Store) list(where string, arg any) ([]*Token, error) {
	rows, err := s.db.Query(
		`SELECT `+tokenColumns+` FROM share_tokens
		 WHERE `+where+` AND is_active = 1
		 ORDER BY created_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list share tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// Revoke deactivates a share token by id. Idempotent: revoking an already
// revoked token reports found=true.
func (s *Store) Revoke(id string) (found bool, err error) {
	res, err := s.db.Exec(`UPDATE share_tokens SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke share token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	// RowsAffected may be 0 because the row does not exist or because it
	// was already inactive; distinguish the two.
	var exists int
	err = s.db.QueryRow(`SELECT COUNT(*) FROM share_tokens WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// RecordAccess atomically increments the view counter and stamps
// last_accessed_at, returning the post-increment count.
func (s *Store) RecordAccess(id string) (int, error) {
	now := time.Now().Unix()
	row := s.db.QueryRow(
		`UPDATE share_tokens
		 SET view_count = view_count + 1, last_accessed_at = ?
		 WHERE id = ?
		 RETURNING view_count`,
		now, id,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to record share access: %w", err)
	}
	return count, nil
}
