package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized means the server rejected the bearer token (401).
	// Callers should treat the session as invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport failures and 5xx responses.
	// Retrying is the caller's choice, never automatic.
	ErrUnavailable = errors.New("server unavailable")
)

// RequestError is a 4xx response carrying the server's human-readable
// explanation. The detail is surfaced verbatim to the user.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FieldErrors maps request field names to validation messages from a
// 422 response.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		fmt.Fprintf(&b, "; %s: %s", f, e[f])
	}
	return b.String()
}

// Reason extracts a displayable message from an API error, falling back
// to the given default for errors with no server-provided detail.
func Reason(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return fallback
}
