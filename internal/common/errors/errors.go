// Package errors provides standardized error handling for the RMA pipeline.
package errors

import (
	"errors"
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
	// Directory lookup errors
	ErrCodeContactNotFound      ErrorCode = "CONTACT_NOT_FOUND"
	ErrCodeDirectoryUnavailable ErrorCode = "DIRECTORY_UNAVAILABLE"
	ErrCodeDirectoryAmbiguous   ErrorCode = "DIRECTORY_AMBIGUOUS"

	// Workbook store errors
	ErrCodeStoreLocked   ErrorCode = "STORE_LOCKED"
	ErrCodeSheetNotFound ErrorCode = "SHEET_NOT_FOUND"
	ErrCodeMissingColumn ErrorCode = "MISSING_COLUMN"
	ErrCodeStoreIOFailed ErrorCode = "STORE_IO_FAILED"

	// Request validation
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Post-persist side effects
	ErrCodeAuditWriteFailed       ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeDocumentRenderFailed   ErrorCode = "DOCUMENT_RENDER_FAILED"
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

// NewContactNotFoundError signals a directory search with zero matches.
// Recoverable: the operator can re-run with a corrected email.
func NewContactNotFoundError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactNotFound,
		Message:   "No directory contact matches the given email",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryUnavailableError signals a transport or API failure
// (timeout, non-2xx status, malformed payload).
func NewDirectoryUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryUnavailable,
		Message:   "Directory service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryAmbiguousError signals multiple directory matches under the
// "fail" tie-break policy.
func NewDirectoryAmbiguousError(email string, matches int) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryAmbiguous,
		Message:   "Multiple directory contacts match the given email",
		Details:   fmt.Sprintf("email: %s, matches: %d", email, matches),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreLockedError signals that the workbook file is held by another
// process. User-actionable: close the other handle and retry manually.
func NewStoreLockedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreLocked,
		Message:   "Workbook file is held by another process",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSheetNotFoundError creates a non-retryable schema error.
func NewSheetNotFoundError(sheet string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSheetNotFound,
		Message:   "Named sheet not found in workbook",
		Details:   fmt.Sprintf("sheet: %s", sheet),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingColumnError creates a non-retryable schema error.
func NewMissingColumnError(column string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingColumn,
		Message:   "Header row lacks the RMA number column",
		Details:   fmt.Sprintf("column: %s", column),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreIOError creates a non-retryable I/O error for workbook load/save
// failures.
func NewStoreIOError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreIOFailed,
		Message:   "Workbook I/O operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteFailedError creates a retryable audit insert error.
func NewAuditWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Audit trail insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentRenderFailedError creates a non-retryable PDF render error.
func NewDocumentRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentRenderFailed,
		Message:   "RMA document rendering failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from an error chain, or "" if the error is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsSchemaError reports whether the code indicates workbook misconfiguration
// rather than a transient condition. Schema errors are fatal to the run.
func IsSchemaError(code ErrorCode) bool {
	return code == ErrCodeSheetNotFound || code == ErrCodeMissingColumn
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DIRECTORY") || strings.Contains(codeStr, "CONTACT"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "SHEET") || strings.Contains(codeStr, "COLUMN"):
		return "STORE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "AUDIT") || strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "DOCUMENT"):
		return "SIDE_EFFECT"
	default:
		return "OTHER"
	}
}
