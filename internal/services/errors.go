package services

import (
	"errors"
	"fmt"

	"genovault/internal/constants"
)

// ServiceError represents a service-level error with an error code
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new service error
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

// WrapServiceError wraps an existing error with a service error
func WrapServiceError(code, message string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// IsServiceError checks if an error is a ServiceError and returns its code
func IsServiceError(err error) (string, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code, true
	}
	return "", false
}

// Pre-defined service errors for common cases
var (
	// Request validation
	ErrInvalidRequest = NewServiceError(constants.ErrCodeInvalidRequest, "invalid request")

	// Auth errors
	ErrAuthRequired           = NewServiceError(constants.ErrCodeAuthRequired, "authentication required")
	ErrAuthInvalidCredentials = NewServiceError(constants.ErrCodeAuthInvalidCredentials, "Invalid email or password")
	ErrAuthAccountDisabled    = NewServiceError(constants.ErrCodeAuthAccountDisabled, "Account is deactivated. Please contact administrator.")
	ErrAuthSessionExpired     = NewServiceError(constants.ErrCodeAuthSessionExpired, "session expired")
	ErrAuthForbidden          = NewServiceError(constants.ErrCodeAuthForbidden, "access denied")

	// Share errors
	ErrShareNotFound        = NewServiceError(constants.ErrCodeShareNotFound, "Invalid or expired share token")
	ErrShareRevoked         = NewServiceError(constants.ErrCodeShareRevoked, "This share link has been revoked")
	ErrShareExpired         = NewServiceError(constants.ErrCodeShareExpired, "This share link has expired")
	ErrSharePasswordMissing = NewServiceError(constants.ErrCodeSharePasswordMissing, "This report is password protected")
	ErrSharePasswordInvalid = NewServiceError(constants.ErrCodeSharePasswordInvalid, "Incorrect password")

	// Report errors
	ErrReportNotFound  = NewServiceError(constants.ErrCodeReportNotFound, "report not found")
	ErrPatientNotFound = NewServiceError(constants.ErrCodePatientNotFound, "patient not found")

	// Upload errors
	ErrUploadNotFound    = NewServiceError(constants.ErrCodeUploadNotFound, "upload not found")
	ErrUploadInvalidType = NewServiceError(constants.ErrCodeUploadInvalidType, "file type not allowed")
	ErrUploadTooLarge    = NewServiceError(constants.ErrCodeUploadTooLarge, "file exceeds maximum size")

	// Internal errors
	ErrInternal = NewServiceError(constants.ErrCodeInternalError, "internal server error")
)

// ErrMissingParamWithName builds a MISSING_PARAM error naming the parameter.
func ErrMissingParamWithName(name string) *ServiceError {
	return &ServiceError{
		Code:    constants.ErrCodeMissingParam,
		Message: fmt.Sprintf("required parameter missing: %s", name),
	}
}

// ErrInvalidCredentialsWithRemaining matches the login response wording:
// the attempt count hint is part of the message, not a separate field.
func ErrInvalidCredentialsWithRemaining(remaining int) *ServiceError {
	return &ServiceError{
		Code:    constants.ErrCodeAuthInvalidCredentials,
		Message: fmt.Sprintf("Invalid email or password. %d attempt(s) remaining.", remaining),
	}
}

// ErrAccountLockedWithMinutes reports the minutes remaining on a lockout.
func ErrAccountLockedWithMinutes(minutes int) *ServiceError {
	return &ServiceError{
		Code:    constants.ErrCodeAuthAccountLocked,
		Message: fmt.Sprintf("Account locked due to too many failed attempts. Try again in %d minute(s).", minutes),
	}
}

// WrapInternalError wraps unexpected storage or crypto failures.
func WrapInternalError(err error) *ServiceError {
	return WrapServiceError(constants.ErrCodeInternalError, "internal error", err)
}
