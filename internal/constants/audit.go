package constants

// Audit action types
const (
	AuditActionLoginSuccess  = "login_success"
	AuditActionLoginFailed   = "login_failed"
	AuditActionLogout        = "logout"
	AuditActionShareCreated  = "share_created"
	AuditActionShareRevoked  = "share_revoked"
	AuditActionShareAccessed = "share_accessed"
)

// Login failure reasons recorded in audit details
const (
	AuditReasonUserNotFound    = "user_not_found"
	AuditReasonAccountInactive = "account_inactive"
	AuditReasonAccountLocked   = "account_locked"
	AuditReasonInvalidPassword = "invalid_password"
)

// Audit log retention
const (
	AuditMaxLogSizeBytes     = 256 * 1024 * 1024 // 256MB
	AuditPurgePercentage     = 20
	AuditMinPurgeEntries     = 100
	AuditCleanupIntervalMins = 60
)
