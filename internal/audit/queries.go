package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"genovault/internal/constants"
)

// QueryFilter narrows an audit log listing.
type QueryFilter struct {
	Action string
	Email  string
	Limit  int
}

// Query returns audit entries newest first, optionally filtered by action
// and email. Limit is clamped to the configured page bounds.
func Query(db *sql.DB, filter QueryFilter) ([]Entry, error) {
	if filter.Action != "" && !IsValidAction(filter.Action) {
		return nil, fmt.Errorf("invalid action type: %s", filter.Action)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	query := `SELECT id, timestamp, action, ip_address, email, details_json FROM audit_log`
	var args []any
	var where []string

	if filter.Action != "" {
		where = append(where, `action = ?`)
		args = append(args, filter.Action)
	}
	if filter.Email != "" {
		where = append(where, `email = ?`)
		args = append(args, filter.Email)
	}
	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var detailsJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.IPAddress, &e.Email, &detailsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if detailsJSON.Valid {
			var details interface{}
			if err := json.Unmarshal([]byte(detailsJSON.String), &details); err == nil {
				e.Details = details
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
