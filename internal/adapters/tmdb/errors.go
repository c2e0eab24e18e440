package tmdb

import (
	"errors"
	"net/http"

	perr "marquee/internal/platform/errors"
)

// RequestFailedError reports a catalog call that did not yield a usable body.
// Status is 0 when the transport failed before a response arrived
type RequestFailedError struct {
	Path   string
	Status int
	Reason string
	code   perr.ErrorCode
	cause  error
}

func (e *RequestFailedError) Error() string { return "catalog request failed: " + e.Reason }

// Code is the project error code for the failure
func (e *RequestFailedError) Code() perr.ErrorCode { return e.code }

// HTTPStatus is the catalog status, 0 for transport failures
func (e *RequestFailedError) HTTPStatus() int { return e.Status }

// Unwrap exposes the coded error so perr.CodeOf and perr.HTTPStatus map it,
// wrapping the transport cause when there is one
func (e *RequestFailedError) Unwrap() error {
	if e.cause != nil {
		return perr.Wrap(e.cause, e.code, e.Reason)
	}
	return perr.New(e.code, e.Reason)
}

func transportFailed(path string, err error) error {
	return &RequestFailedError{
		Path:   path,
		Reason: err.Error(),
		code:   perr.ErrorCodeUnavailable,
		cause:  err,
	}
}

func statusFailed(path string, status int, message string) error {
	reason := message
	if reason == "" {
		reason = http.StatusText(status)
		if reason == "" {
			reason = "unexpected status"
		}
	}
	return &RequestFailedError{
		Path:   path,
		Status: status,
		Reason: reason,
		code:   codeForStatus(status),
	}
}

func decodeFailed(path string, status int, err error) error {
	return &RequestFailedError{
		Path:   path,
		Status: status,
		Reason: "undecodable response: " + err.Error(),
		code:   perr.ErrorCodeUpstream,
		cause:  err,
	}
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	default:
		return perr.ErrorCodeUnavailable
	}
}

// IsNotFound reports whether err is a catalog 404
func IsNotFound(err error) bool {
	var rf *RequestFailedError
	return errors.As(err, &rf) && rf.Status == http.StatusNotFound
}

// IsRateLimited reports whether err is a catalog 429
func IsRateLimited(err error) bool {
	var rf *RequestFailedError
	return errors.As(err, &rf) && rf.Status == http.StatusTooManyRequests
}
