// Package errors provides standardized error handling for the intake pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSubmissionValidationFailed ErrorCode = "SUBMISSION_VALIDATION_FAILED"
	ErrCodeDuplicateEnrollment        ErrorCode = "DUPLICATE_ENROLLMENT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSchemaEnsureFailed       ErrorCode = "SCHEMA_ENSURE_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeDocumentWriteFailed ErrorCode = "DOCUMENT_WRITE_FAILED"
	ErrCodeIndexWriteFailed    ErrorCode = "INDEX_WRITE_FAILED"
	ErrCodeProtocolCacheFailed ErrorCode = "PROTOCOL_CACHE_FAILED"
	ErrCodeNotificationFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCatalogInvariant    ErrorCode = "CATALOG_INVARIANT_VIOLATION"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSubmissionValidationFailedError creates a non-retryable validation error.
func NewSubmissionValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionValidationFailed,
		Message:   "Submission data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateEnrollmentError creates a non-retryable duplicate enrollment error.
func NewDuplicateEnrollmentError(cpf string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateEnrollment,
		Message:   "Enrollment already exists for this CPF",
		Details:   fmt.Sprintf("cpf: %s", cpf),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaEnsureFailedError creates a retryable schema creation error.
func NewSchemaEnsureFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaEnsureFailed,
		Message:   "Failed to ensure enrollment relation",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentWriteFailedError creates a retryable document storage error.
func NewDocumentWriteFailedError(slot string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentWriteFailed,
		Message:   "Document write failed",
		Details:   fmt.Sprintf("slot: %s, error: %s", slot, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexWriteFailedError creates a retryable search index error.
func NewIndexWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Enrollment index write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProtocolCacheFailedError creates a retryable protocol cache error.
func NewProtocolCacheFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProtocolCacheFailed,
		Message:   "Protocol lookup cache write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvariantError creates a non-retryable catalog configuration error.
// This is a programmer error and should abort process start.
func NewCatalogInvariantError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvariant,
		Message:   "Role catalog invariant violated",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeSchemaEnsureFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeDocumentWriteFailed,
		ErrCodeIndexWriteFailed,
		ErrCodeProtocolCacheFailed,
		ErrCodeNotificationFailed:
		return 3 // Retryable technical errors

	default:
		return 0 // User-fixable and programmer errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "DUPLICATE"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SCHEMA"):
		return "DATABASE"
	case strings.Contains(codeStr, "DOCUMENT") || strings.Contains(codeStr, "INDEX") || strings.Contains(codeStr, "PROTOCOL"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CATALOG"):
		return "CONFIGURATION"
	default:
		return "OTHER"
	}
}
