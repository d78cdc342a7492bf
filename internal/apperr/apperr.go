// Package apperr classifies failures crossing the pipeline boundary so the
// HTTP layer can map them to a status without inspecting provider internals.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown is an unclassified internal failure.
	KindUnknown Kind = iota
	// KindAuth means a provider credential is invalid or expired.
	KindAuth
	// KindUnavailable covers network errors, rate limits and timeouts from
	// either collaborator.
	KindUnavailable
	// KindNotFound means the requested repository or file does not exist.
	KindNotFound
	// KindInvalidRequest is a caller mistake: empty question, bad identifier.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Error carries a Kind alongside the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind. A nil err yields an error carrying only the kind.
func E(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Errorf is E with fmt.Errorf formatting for the cause.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the classification from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsAuth(err error) bool           { return KindOf(err) == KindAuth }
func IsUnavailable(err error) bool    { return KindOf(err) == KindUnavailable }
func IsNotFound(err error) bool       { return KindOf(err) == KindNotFound }
func IsInvalidRequest(err error) bool { return KindOf(err) == KindInvalidRequest }
