package table

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known error categories raised by the table model.
type ErrorCode string

const (
	ErrCodeInvalidRange      ErrorCode = "INVALID_RANGE"
	ErrCodePredicate         ErrorCode = "PREDICATE_FAILURE"
	ErrCodeMissingComparator ErrorCode = "MISSING_COMPARATOR"
	ErrCodeDuplicate         ErrorCode = "DUPLICATE_ID"
	ErrCodeState             ErrorCode = "INVALID_STATE"
)

// Sentinels usable with errors.Is. They match any DomainError of the same code.
var (
	ErrInvalidRange      = &DomainError{Code: ErrCodeInvalidRange}
	ErrPredicateFailure  = &DomainError{Code: ErrCodePredicate}
	ErrMissingComparator = &DomainError{Code: ErrCodeMissingComparator}
	ErrDuplicateID       = &DomainError{Code: ErrCodeDuplicate}
	ErrInvalidState      = &DomainError{Code: ErrCodeState}
)

// DomainError represents a typed error enriched with contextual data. The table
// package never logs; every DomainError is returned to the immediate caller.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is a DomainError with the same code. A target
// without a message matches any message.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) || e == nil || domainErr == nil {
		return false
	}
	if e.Code != domainErr.Code {
		return false
	}
	return domainErr.Message == "" || e.Message == domainErr.Message
}

// WithContext clones the error with additional contextual metadata.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

// IsCode reports whether err carries a DomainError with the given code anywhere
// in its chain.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	for err != nil {
		if !errors.As(err, &domainErr) {
			return false
		}
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Cause
	}
	return false
}

func newDomainError(code ErrorCode, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

func newRangeError(message string, offset, length int) *DomainError {
	return newDomainError(ErrCodeInvalidRange, message, nil, map[string]interface{}{
		"offset": offset,
		"count":  length,
	})
}

func newPredicateError(cause error) *DomainError {
	return newDomainError(ErrCodePredicate, "filter predicate failed", cause, nil)
}

func newMissingComparatorError(key ColumnKey) *DomainError {
	return newDomainError(ErrCodeMissingComparator, "no comparator registered for column", nil, map[string]interface{}{
		"column": string(key),
	})
}

func newDuplicateError(identifier any) *DomainError {
	return newDomainError(ErrCodeDuplicate, "duplicate identifier", nil, map[string]interface{}{
		"id": identifier,
	})
}

func newStateError(message string, context map[string]interface{}) *DomainError {
	return newDomainError(ErrCodeState, message, nil, context)
}
