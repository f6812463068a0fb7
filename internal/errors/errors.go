// Package errors classifies failures by code and severity and reports them.
package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError is a classified failure. UserMessage is an i18n key, not rendered text.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// class fixes everything about an AppError except its message and cause.
type class struct {
	code      string
	userKey   string
	severity  Severity
	retryable bool
}

var (
	classDatabase  = class{code: "E200", userKey: "errors.temporary", severity: SeverityHigh, retryable: true}
	classTelegram  = class{code: "E300", userKey: "errors.temporary", severity: SeverityMedium, retryable: true}
	classRateLimit = class{code: "E500", userKey: "errors.rate_limited", severity: SeverityLow}
	classInternal  = class{code: "E900", userKey: "errors.generic", severity: SeverityCritical}
)

func (c class) wrap(cause error, format string, args ...any) *AppError {
	return &AppError{
		Code:        c.code,
		Message:     fmt.Sprintf(format, args...),
		UserMessage: c.userKey,
		Severity:    c.severity,
		Retryable:   c.retryable,
		cause:       cause,
	}
}

func NewDatabaseError(cause error) *AppError {
	return classDatabase.wrap(cause, "database: %v", cause)
}

// NewTelegramError wraps a failed Bot API call to method.
func NewTelegramError(method string, cause error) *AppError {
	return classTelegram.wrap(cause, "telegram %s: %v", method, cause)
}

func NewRateLimitError(retryAfter int) *AppError {
	return classRateLimit.wrap(nil, "rate limited for %ds", retryAfter)
}

// NewInternalError covers bugs, recovered panics included.
func NewInternalError(cause error) *AppError {
	return classInternal.wrap(cause, "internal: %v", cause)
}
