package audit

import (
	"genovault/internal/constants"
)

// Entry represents a single audit log entry
type Entry struct {
	ID        int64       `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Action    string      `json:"action"`
	IPAddress string      `json:"ip_address"`
	Email     string      `json:"email"`
	Details   interface{} `json:"details,omitempty"`
}

// =============================================================================
// Detail Structs — Authentication
// =============================================================================

// LoginSuccessDetails holds details for login_success action
type LoginSuccessDetails struct {
	UserAgent string `json:"user_agent"`
}

// LoginFailedDetails holds details for login_failed action
type LoginFailedDetails struct {
	AttemptedEmail string `json:"attempted_email"`
	Reason         string `json:"reason"`
	Attempts       int    `json:"attempts,omitempty"`
	UserAgent      string `json:"user_agent"`
}

// LogoutDetails holds details for logout action
type LogoutDetails struct{}

// =============================================================================
// Detail Structs — Share Links
// =============================================================================

// ShareCreatedDetails holds details for share_created action
type ShareCreatedDetails struct {
	ShareID     string `json:"share_id"`
	ReportID    string `json:"report_id"`
	PatientID   string `json:"patient_id"`
	HasPassword bool   `json:"has_password"`
	HasExpiry   bool   `json:"has_expiry"`
	MaxViews    int    `json:"max_views,omitempty"`
}

// ShareRevokedDetails holds details for share_revoked action
type ShareRevokedDetails struct {
	ShareID  string `json:"share_id"`
	ReportID string `json:"report_id"`
}

// ShareAccessedDetails holds details for share_accessed action
type ShareAccessedDetails struct {
	ShareID   string `json:"share_id"`
	ReportID  string `json:"report_id"`
	ViewCount int    `json:"view_count"`
	UserAgent string `json:"user_agent"`
}

// =============================================================================
// Validation
// =============================================================================

// ValidActions returns all valid audit action types
func ValidActions() []string {
	return []string{
		constants.AuditActionLoginSuccess,
		constants.AuditActionLoginFailed,
		constants.AuditActionLogout,
		constants.AuditActionShareCreated,
		constants.AuditActionShareRevoked,
		constants.AuditActionShareAccessed,
	}
}

// IsValidAction checks if an action type is valid
func IsValidAction(action string) bool {
	for _, valid := range ValidActions() {
		if action == valid {
			return true
		}
	}
	return false
}
