package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"genovault/internal/constants"
)

// Logger provides thread-safe, append-only audit logging with size-based
// retention.
type Logger struct {
	db              *sql.DB
	maxLogSizeBytes int64
	purgePercentage int
	mu              sync.Mutex
	stopClean       chan struct{}
	stopOnce        sync.Once
}

// NewLogger creates a new audit logger and starts the cleanup goroutine
func NewLogger(db *sql.DB, maxLogSizeBytes int64, purgePercentage int) *Logger {
	if maxLogSizeBytes <= 0 {
		maxLogSizeBytes = constants.AuditMaxLogSizeBytes
	}
	if purgePercentage <= 0 || purgePercentage > 100 {
		purgePercentage = constants.AuditPurgePercentage
	}
	l := &Logger{
		db:              db,
		maxLogSizeBytes: maxLogSizeBytes,
		purgePercentage: purgePercentage,
		stopClean:       make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Stop stops the cleanup goroutine (call during graceful shutdown)
func (l *Logger) Stop() {
	l.stopOnce.Do(func() { close(l.stopClean) })
}

// Log records an audit entry (thread-safe, append-only)
func (l *Logger) Log(action string, ipAddress string, email string, details interface{}) error {
	if !IsValidAction(action) {
		return fmt.Errorf("invalid action type: %s", action)
	}

	var detailsJSON sql.NullString
	if details != nil {
		jsonBytes, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(jsonBytes), Valid: true}
	}

	timestamp := time.Now().Unix()

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.Exec(`
		INSERT INTO audit_log (timestamp, action, ip_address, email, details_json)
		VALUES (?, ?, ?, ?, ?)
	`, timestamp, action, ipAddress, email, detailsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// cleanupLoop periodically checks and enforces the log size limit
func (l *Logger) cleanupLoop() {
	ticker := time.NewTicker(time.Duration(constants.AuditCleanupIntervalMins) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopClean:
			return
		case <-ticker.C:
			l.enforceLogSizeLimit()
		}
	}
}

// enforceLogSizeLimit checks the database size and purges oldest entries if needed
func (l *Logger) enforceLogSizeLimit() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var pageCount, pageSize int64
	if err := l.db.QueryRow("SELECT page_count FROM pragma_page_count()").Scan(&pageCount); err != nil {
		return
	}
	if err := l.db.QueryRow("SELECT page_size FROM pragma_page_size()").Scan(&pageSize); err != nil {
		return
	}

	totalSize := pageCount * pageSize
	if totalSize < l.maxLogSizeBytes {
		return
	}

	var totalEntries int64
	if err := l.db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&totalEntries); err != nil {
		return
	}

	purgeCount := totalEntries * int64(l.purgePercentage) / 100
	if purgeCount < int64(constants.AuditMinPurgeEntries) {
		purgeCount = int64(constants.AuditMinPurgeEntries)
	}
	if purgeCount > totalEntries {
		purgeCount = totalEntries / 2 // Keep at least half
	}
	if purgeCount <= 0 {
		return
	}

	tx, err := l.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM audit_log
		WHERE id IN (
			SELECT id FROM audit_log
			ORDER BY id ASC
			LIMIT ?
		)
	`, purgeCount)
	if err != nil {
		return
	}

	tx.Commit()
}
