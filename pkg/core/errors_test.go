package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		want      string
	}{
		{"unknown", ErrorTypeUnknown, "UNKNOWN"},
		{"bad_parse", ErrorTypeBadParse, "BAD_PARSE"},
		{"bad_status", ErrorTypeBadStatus, "BAD_STATUS"},
		{"bad_connection", ErrorTypeBadConnection, "BAD_CONNECTION"},
		{"nothing_to_do", ErrorTypeNothingToDo, "NOTHING_TO_DO"},
		{"not_found", ErrorTypeNotFound, "NOT_FOUND"},
		{"out_of_range", ErrorType(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errorType.String())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"bad_parse", NewError(ErrorTypeBadParse, "account object"), "could not parse: account object"},
		{"bad_status", NewError(ErrorTypeBadStatus, "status 404: missing"), "non-success status: status 404: missing"},
		{"bad_connection", NewError(ErrorTypeBadConnection, "GET /x"), "could not connect: GET /x"},
		{"nothing_to_do", NewError(ErrorTypeNothingToDo, "no order ids"), "nothing to do: no order ids"},
		{"not_found", NewError(ErrorTypeNotFound, "no matching ids"), "could not find: no matching ids"},
		{"unknown", NewError(ErrorTypeUnknown, "GET request to API"), "unknown error: GET request to API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapError_Unwrap(t *testing.T) {
	err := WrapError(ErrorTypeUnknown, "request canceled", context.Canceled)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsUnknown(err))
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("list accounts: %w", NewError(ErrorTypeNotFound, "no matching ids"))

	got, ok := TypeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, got)

	_, ok = TypeOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = TypeOf(nil)
	assert.False(t, ok)
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		check func(error) bool
		match ErrorType
	}{
		{"bad_parse", IsBadParse, ErrorTypeBadParse},
		{"bad_status", IsBadStatus, ErrorTypeBadStatus},
		{"bad_connection", IsBadConnection, ErrorTypeBadConnection},
		{"nothing_to_do", IsNothingToDo, ErrorTypeNothingToDo},
		{"not_found", IsNotFound, ErrorTypeNotFound},
		{"unknown", IsUnknown, ErrorTypeUnknown},
	}

	all := []ErrorType{
		ErrorTypeUnknown,
		ErrorTypeBadParse,
		ErrorTypeBadStatus,
		ErrorTypeBadConnection,
		ErrorTypeNothingToDo,
		ErrorTypeNotFound,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, et := range all {
				err := NewError(et, "detail")
				assert.Equal(t, et == tt.match, tt.check(err), "type %s", et)
			}
			assert.False(t, tt.check(nil))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}
