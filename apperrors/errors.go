// Package apperrors defines the typed errors shared across services so
// controllers can map failures to the right HTTP status instead of
// returning everything as a 500.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	// KindValidation is malformed or out-of-range caller input.
	KindValidation Kind = "validation"
	// KindConfiguration is a missing credential or bad server setup.
	// Never retried; surfaces immediately.
	KindConfiguration Kind = "configuration"
	// KindTransport is a network or timeout failure talking to an
	// external API. Triggers fallback where one exists.
	KindTransport Kind = "transport"
	// KindNotFound means a lookup found no matching record. Distinct from
	// transport so callers can answer 404 rather than 502.
	KindNotFound Kind = "not_found"
	// KindUpstreamFormat is a successful external call whose response is
	// missing expected content. Treated like transport for fallback.
	KindUpstreamFormat Kind = "upstream_format"
)

// Error carries a kind plus a wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a kind and message.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or "" if err is not an application error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
