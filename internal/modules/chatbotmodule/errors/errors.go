// Package errors provides structured errors for the chatbot module.
//
// The classification core never returns errors; these types cover catalog
// validation, storage, configuration and responder failures around it.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a ChatbotError.
type ErrorType string

const (
	// ErrorTypeCatalog covers persona catalog validation and loading
	ErrorTypeCatalog ErrorType = "catalog"
	// ErrorTypeConfig covers incomplete taxonomy or response tables
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeStorage covers persona repository failures
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeResponder covers AI responder failures
	ErrorTypeResponder ErrorType = "responder"
	// ErrorTypeValidation covers bad request input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal covers everything else
	ErrorTypeInternal ErrorType = "internal"
)

// Sentinel errors
var (
	ErrEmptyCatalog         = errors.New("persona catalog is empty")
	ErrNoGeneralPersona     = errors.New("persona catalog has no general persona")
	ErrInvalidPersona       = errors.New("invalid persona record")
	ErrDuplicatePersona     = errors.New("duplicate persona id")
	ErrPersonaNotFound      = errors.New("persona not found")
	ErrEmptyTaxonomy        = errors.New("keyword taxonomy is empty")
	ErrUnsupportedLanguage  = errors.New("language has no table")
	ErrResponderUnavailable = errors.New("responder unavailable")
	ErrInvalidInput         = errors.New("invalid input")
)

// ChatbotError carries the failing operation and optional details.
type ChatbotError struct {
	Type    ErrorType
	Op      string
	Err     error
	Details map[string]interface{}
}

func (e *ChatbotError) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Type, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ChatbotError) Unwrap() error {
	return e.Err
}

// New creates a ChatbotError.
func New(errType ErrorType, op string, err error) *ChatbotError {
	return &ChatbotError{
		Type:    errType,
		Op:      op,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a key-value detail to the error
func (e *ChatbotError) WithDetail(key string, value interface{}) *ChatbotError {
	e.Details[key] = value
	return e
}

// IsDegraded reports whether the error leaves the engine serving defaults
// rather than failing the request.
func (e *ChatbotError) IsDegraded() bool {
	switch e.Type {
	case ErrorTypeCatalog, ErrorTypeConfig, ErrorTypeResponder:
		return true
	}
	return false
}

func CatalogError(op string, err error) *ChatbotError {
	return New(ErrorTypeCatalog, op, err)
}

func ConfigError(op string, err error) *ChatbotError {
	return New(ErrorTypeConfig, op, err)
}

func StorageError(op string, err error) *ChatbotError {
	return New(ErrorTypeStorage, op, err)
}

func ResponderError(op string, err error) *ChatbotError {
	return New(ErrorTypeResponder, op, err)
}

func ValidationError(op string, err error) *ChatbotError {
	return New(ErrorTypeValidation, op, err)
}

// Wrap wraps err with operation context unless it already is a ChatbotError.
func Wrap(err error, errType ErrorType, op string) error {
	if err == nil {
		return nil
	}
	var cErr *ChatbotError
	if errors.As(err, &cErr) {
		return err
	}
	return New(errType, op, err)
}

// GetType extracts the error type, defaulting to internal.
func GetType(err error) ErrorType {
	var cErr *ChatbotError
	if errors.As(err, &cErr) {
		return cErr.Type
	}
	return ErrorTypeInternal
}

// GetOperation extracts the failing operation.
func GetOperation(err error) string {
	var cErr *ChatbotError
	if errors.As(err, &cErr) {
		return cErr.Op
	}
	return "unknown"
}

// IsDegraded reports whether err is a ChatbotError of a degrading type.
func IsDegraded(err error) bool {
	var cErr *ChatbotError
	if errors.As(err, &cErr) {
		return cErr.IsDegraded()
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
