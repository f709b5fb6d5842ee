package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP boundary can map it to a status code.
type Kind string

const (
	// KindNotFound indicates a missing document or a domain entity that does
	// not exist (e.g. a player without a guild).
	KindNotFound Kind = "not_found"
	// KindParse indicates a persisted document that could not be decoded.
	KindParse Kind = "parse"
	// KindUpstream indicates a failure talking to the upstream game-data service.
	KindUpstream Kind = "upstream"
	// KindUnavailable indicates a collection that stayed unreadable or stale
	// after a recovery synchronization.
	KindUnavailable Kind = "unavailable"
)

// Error carries a kind and a message, optionally wrapping a cause.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message. Returns nil if err is nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
