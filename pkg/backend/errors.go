package backend

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// ErrorInvalidRequest marks malformed caller input. Never retried.
	ErrorInvalidRequest ErrorKind = "invalid_request"

	// ErrorUnknownBackend marks a name that is not registered.
	ErrorUnknownBackend ErrorKind = "unknown_backend"

	// ErrorUnavailable marks a registered backend whose probe failed.
	ErrorUnavailable ErrorKind = "unavailable"

	// ErrorTooLarge marks a document exceeding descriptor limits.
	ErrorTooLarge ErrorKind = "too_large"

	// ErrorUnsupported marks input the backend cannot handle.
	ErrorUnsupported ErrorKind = "unsupported"

	// ErrorAuthentication marks missing or rejected credentials.
	ErrorAuthentication ErrorKind = "authentication"

	// ErrorQuota marks rate limits or billing caps.
	ErrorQuota ErrorKind = "quota"

	// ErrorTransient marks network failures and 5xx responses. Safe to retry.
	ErrorTransient ErrorKind = "transient"

	// ErrorPermanent marks other backend-reported failures. Not retried.
	ErrorPermanent ErrorKind = "permanent"
)

type Error struct {
	Kind ErrorKind

	// Backend names the adapter that produced the error, if resolved.
	Backend string

	Err error
}

func (e *Error) Error() string {
	msg := string(e.Kind)

	if e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Backend != "" {
		return e.Backend + ": " + msg
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// WrapError attaches a backend name and kind to err, keeping an existing
// kind and name if err already carries them.
func WrapError(name string, kind ErrorKind, err error) *Error {
	var e *Error

	if errors.As(err, &e) {
		if e.Backend == "" {
			// Adapters may return shared error values; never write
			// through the alias.
			clone := *e
			clone.Backend = name

			return &clone
		}

		return e
	}

	return &Error{
		Kind:    kind,
		Backend: name,
		Err:     err,
	}
}

// KindOf returns the kind carried by err, or ErrorPermanent if none.
func KindOf(err error) ErrorKind {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind
	}

	return ErrorPermanent
}

// IsTransient reports whether err is safe to retry.
func IsTransient(err error) bool {
	return KindOf(err) == ErrorTransient
}
