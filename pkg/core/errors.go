package core

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a client error.
// The set is closed: callers switch on it, so adding a value is a compatibility change.
type ErrorType int

// Error type constants classify every failure returned by the client.
const (
	// ErrorTypeUnknown indicates a failure without a distinguishable cause.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeBadParse indicates the response did not match the expected shape.
	ErrorTypeBadParse
	// ErrorTypeBadStatus indicates the server answered with a non-success status.
	ErrorTypeBadStatus
	// ErrorTypeBadConnection indicates the server could not be reached.
	ErrorTypeBadConnection
	// ErrorTypeNothingToDo indicates the requested operation had no effect to perform.
	ErrorTypeNothingToDo
	// ErrorTypeNotFound indicates a logical lookup finished without a match.
	ErrorTypeNotFound
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	if t < ErrorTypeUnknown || t > ErrorTypeNotFound {
		return "UNKNOWN"
	}
	return [...]string{
		"UNKNOWN",
		"BAD_PARSE",
		"BAD_STATUS",
		"BAD_CONNECTION",
		"NOTHING_TO_DO",
		"NOT_FOUND",
	}[t]
}

func (t ErrorType) prefix() string {
	switch t {
	case ErrorTypeBadParse:
		return "could not parse"
	case ErrorTypeBadStatus:
		return "non-success status"
	case ErrorTypeBadConnection:
		return "could not connect"
	case ErrorTypeNothingToDo:
		return "nothing to do"
	case ErrorTypeNotFound:
		return "could not find"
	default:
		return "unknown error"
	}
}

// Error is the single error type returned by the transport and API modules.
// Message is free text; callers should match on Type only.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// Message describes what failed, e.g. "account object" or "status 404: ...".
	Message string `json:"message"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type.prefix(), e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates an Error of the given type.
func NewError(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// WrapError creates an Error of the given type that keeps cause reachable through errors.Is/As.
func WrapError(errorType ErrorType, message string, cause error) *Error {
	return &Error{Type: errorType, Message: message, cause: cause}
}

// TypeOf reports the ErrorType carried by err.
// The second result is false when err is not (and does not wrap) an *Error.
func TypeOf(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return ErrorTypeUnknown, false
}

func isType(err error, t ErrorType) bool {
	got, ok := TypeOf(err)
	return ok && got == t
}

// IsBadParse returns true if the error is a response shape mismatch.
func IsBadParse(err error) bool { return isType(err, ErrorTypeBadParse) }

// IsBadStatus returns true if the server answered with a non-success status.
func IsBadStatus(err error) bool { return isType(err, ErrorTypeBadStatus) }

// IsBadConnection returns true if the server could not be reached.
// These are the only errors worth retrying with backoff.
func IsBadConnection(err error) bool { return isType(err, ErrorTypeBadConnection) }

// IsNothingToDo returns true if the operation was a no-op.
func IsNothingToDo(err error) bool { return isType(err, ErrorTypeNothingToDo) }

// IsNotFound returns true if a lookup finished without a match.
func IsNotFound(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsUnknown returns true if the error is an unclassified client error.
func IsUnknown(err error) bool { return isType(err, ErrorTypeUnknown) }
