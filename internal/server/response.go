package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"genovault/internal/constants"
	"genovault/internal/services"
)

// APIError represents a standard error response
type APIError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`

	// Set only for the password gate so the viewer can prompt
	RequiresPassword bool `json:"requiresPassword,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error response
func WriteError(w http.ResponseWriter, status int, message string, code string) {
	WriteJSON(w, status, APIError{
		Error:   true,
		Message: message,
		Code:    code,
	})
}

// WriteSuccess writes a simple success response
func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

// handleServiceError maps service errors to HTTP responses.
// It extracts the error code from ServiceError and maps it to the appropriate HTTP status.
func (s *Server) handleServiceError(w http.ResponseWriter, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		s.logger.Error("Unhandled error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", constants.ErrCodeInternalError)
		return
	}
	code := svcErr.Code

	if code == constants.ErrCodeSharePasswordMissing {
		WriteJSON(w, http.StatusUnauthorized, APIError{
			Error:            true,
			Message:          svcErr.Message,
			Code:             code,
			RequiresPassword: true,
		})
		return
	}

	status := http.StatusInternalServerError
	switch code {
	case constants.ErrCodeInvalidRequest, constants.ErrCodeMissingParam,
		constants.ErrCodeUploadInvalidType:
		status = http.StatusBadRequest
	case constants.ErrCodeAuthRequired, constants.ErrCodeAuthInvalidCredentials,
		constants.ErrCodeAuthSessionExpired, constants.ErrCodeSharePasswordInvalid:
		status = http.StatusUnauthorized
	case constants.ErrCodeAuthForbidden, constants.ErrCodeAuthAccountDisabled,
		constants.ErrCodeShareRevoked, constants.ErrCodeShareExpired:
		status = http.StatusForbidden
	case constants.ErrCodeShareNotFound, constants.ErrCodeReportNotFound,
		constants.ErrCodePatientNotFound, constants.ErrCodeUploadNotFound:
		status = http.StatusNotFound
	case constants.ErrCodeUploadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case constants.ErrCodeAuthAccountLocked:
		status = http.StatusTooManyRequests
	case constants.ErrCodeInternalError:
		status = http.StatusInternalServerError
	}

	// Wrapped detail stays in the server log; clients get the message only
	if status == http.StatusInternalServerError {
		s.logger.Error("Service error %s: %v", code, err)
		WriteError(w, status, "Internal server error", code)
		return
	}

	WriteError(w, status, svcErr.Message, code)
}
