package internal

import (
	"fmt"
	"net/http"
	"time"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeRateLimit  ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

// ErrorCode is the machine-readable code surfaced in the error envelope.
type ErrorCode string

const (
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// AppError carries everything the transport layer needs to render a uniform
// error envelope: HTTP status, envelope code and the metadata object.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Metadata   any       `json:"metadata,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewBadRequestError reports an invalid query parameter. metadata carries the
// allowed value set so clients can self-correct.
func NewBadRequestError(message string, metadata any) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeBadRequest,
		Message:    message,
		Metadata:   metadata,
		StatusCode: http.StatusBadRequest,
	}
}

// NewTooManyRequestsError reports an over-quota client. resetAt is surfaced as
// epoch milliseconds under metadata.resetTimestamp.
func NewTooManyRequestsError(resetAt time.Time) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Code:       ErrCodeTooManyRequests,
		Message:    "Too many requests",
		Metadata:   map[string]any{"resetTimestamp": resetAt.UnixMilli()},
		StatusCode: http.StatusTooManyRequests,
	}
}

func NewInternalError(message string, cause error) *AppError {
	meta := map[string]any{}
	if cause != nil {
		meta["message"] = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeInternal,
		Message:    message,
		Metadata:   meta,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}
