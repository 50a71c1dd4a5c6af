package constants

// Error codes returned in the "code" field of API error responses.
const (
	// Request validation
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeMissingParam   = "MISSING_PARAM"

	// Authentication
	ErrCodeAuthRequired           = "AUTH_REQUIRED"
	ErrCodeAuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeAuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"
	ErrCodeAuthAccountLocked      = "AUTH_ACCOUNT_LOCKED"
	ErrCodeAuthSessionExpired     = "AUTH_SESSION_EXPIRED"
	ErrCodeAuthForbidden          = "AUTH_FORBIDDEN"

	// Share links
	ErrCodeShareNotFound        = "SHARE_NOT_FOUND"
	ErrCodeShareRevoked         = "SHARE_REVOKED"
	ErrCodeShareExpired         = "SHARE_EXPIRED"
	ErrCodeSharePasswordMissing = "SHARE_PASSWORD_REQUIRED"
	ErrCodeSharePasswordInvalid = "SHARE_PASSWORD_INVALID"

	// Reports and patients
	ErrCodeReportNotFound  = "REPORT_NOT_FOUND"
	ErrCodePatientNotFound = "PATIENT_NOT_FOUND"

	// Uploads
	ErrCodeUploadNotFound    = "UPLOAD_NOT_FOUND"
	ErrCodeUploadInvalidType = "UPLOAD_INVALID_TYPE"
	ErrCodeUploadTooLarge    = "UPLOAD_TOO_LARGE"

	// Internal
	ErrCodeInternalError = "INTERNAL_ERROR"
)
