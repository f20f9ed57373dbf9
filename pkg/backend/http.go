package backend

import (
	"errors"
	"io"
	"net/http"
)

// ErrorFromResponse maps an HTTP error response onto the uniform error
// taxonomy so callers see one failure contract regardless of backend.
func ErrorFromResponse(name string, resp *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	msg := string(data)

	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return ErrorFromStatus(name, resp.StatusCode, errors.New(msg))
}

// ErrorFromStatus classifies an HTTP status code reported by a backend SDK.
func ErrorFromStatus(name string, status int, err error) *Error {
	return &Error{
		Kind:    kindFromStatus(status),
		Backend: name,
		Err:     err,
	}
}

func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorAuthentication

	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		return ErrorQuota

	case status == http.StatusRequestEntityTooLarge:
		return ErrorTooLarge

	case status >= 500:
		return ErrorTransient

	default:
		return ErrorPermanent
	}
}

// TransientError wraps transport-level failures (connection errors) which
// are safe to retry.
func TransientError(name string, err error) *Error {
	return &Error{
		Kind:    ErrorTransient,
		Backend: name,
		Err:     err,
	}
}
