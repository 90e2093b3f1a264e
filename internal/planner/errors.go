package planner

import (
	"fmt"
	"time"
)

const (
	CodeValidation  = "validation"
	CodeForbidden   = "forbidden"
	CodeNotFound    = "not_found"
	CodeRateLimited = "rate_limited"
	CodeUnavailable = "unavailable"
	CodeTimeout     = "timeout"
	CodeInternal    = "internal"
)

// Error is the typed pipeline error. RetryToken is set when a failed
// generation was parked for a later retry.
type Error struct {
	Code       string
	Message    string
	RetryAfter int
	RetryToken string
	Status     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func StatusForCode(code string) int {
	switch code {
	case CodeValidation:
		return 400
	case CodeForbidden:
		return 403
	case CodeNotFound:
		return 404
	case CodeRateLimited:
		return 429
	case CodeTimeout:
		return 408
	case CodeUnavailable:
		return 503
	default:
		return 500
	}
}

func newError(code, message string, retryAfter time.Duration) *Error {
	retryAfterSec := 0
	if retryAfter > 0 {
		retryAfterSec = int(retryAfter.Seconds())
		if retryAfterSec <= 0 {
			retryAfterSec = 1
		}
	}
	return &Error{
		Code:       code,
		Message:    message,
		RetryAfter: retryAfterSec,
		Status:     StatusForCode(code),
	}
}

func NewValidationError(message string) *Error {
	return newError(CodeValidation, message, 0)
}

func NewNotFoundError(message string) *Error {
	return newError(CodeNotFound, message, 0)
}

func NewRateLimitedError(message string) *Error {
	return newError(CodeRateLimited, message, 24*time.Hour)
}

func NewInternalError(message string) *Error {
	return newError(CodeInternal, message, 0)
}
