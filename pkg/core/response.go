package core

import (
	"github.com/bytedance/sonic"
)

// Response is a successful (HTTP 200) reply with its body fully read.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int

	// Body contains the raw response body bytes.
	Body []byte

	// Headers contains the first value of each response header.
	Headers map[string]string
}

// Decode unmarshals the body into v. On failure it returns a BadParse error
// naming what was expected; the raw body is not included.
func (r *Response) Decode(v any, what string) error {
	if r == nil || len(r.Body) == 0 {
		return NewError(ErrorTypeBadParse, what)
	}
	if err := sonic.Unmarshal(r.Body, v); err != nil {
		return WrapError(ErrorTypeBadParse, what, err)
	}
	return nil
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}
