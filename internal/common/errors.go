package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrValidation          = errors.New("validation failed")
	ErrNoDocuments         = errors.New("no documents selected")
	ErrNoEligibleDocuments = errors.New("no valid PDF documents")
	ErrUnreadableDocument  = errors.New("document could not be read")
	ErrExport              = errors.New("export failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UnreadableDocumentError wraps a collaborator failure for one document.
func UnreadableDocumentError(path string, cause error) error {
	return NewAppError("DOCUMENT_UNREADABLE", path, errors.Join(ErrUnreadableDocument, cause))
}

// IsBatchRejection reports whether err rejects a batch as a whole rather than
// a single document.
func IsBatchRejection(err error) bool {
	return errors.Is(err, ErrNoDocuments) || errors.Is(err, ErrNoEligibleDocuments)
}
