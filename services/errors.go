package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// UpstreamError is the zero value so that an unclassified error is
	// reported as a server side failure.
	UpstreamError ErrorKind = iota
	InvalidInput
	AIFormatError
	ServiceUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case AIFormatError:
		return "ai_format_error"
	case ServiceUnavailable:
		return "service_unavailable"
	default:
		return "upstream_error"
	}
}

// AppError carries the kind of a failure and the detail shown to the caller.
// Err is the underlying cause, kept for logs and Sentry.
type AppError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind ErrorKind, detail string, err error) *AppError {
	return &AppError{Kind: kind, Detail: detail, Err: err}
}

// KindOf reports the kind of err. Errors that are not an *AppError are
// upstream errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return UpstreamError
}

// AsAppError wraps err into an *AppError unless it already is one.
func AsAppError(err error, fallbackDetail string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(UpstreamError, fmt.Sprintf("%s: %v", fallbackDetail, err), err)
}
