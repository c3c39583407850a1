// Package errors provides the unified error type and factory functions for the
// analytics slide generation service. Every layer of the application
// (validate, resolve, shape, chartgen, insight, assemble, orchestrator) uses
// AppError as the single carrier for structured error information, enabling
// consistent HTTP responses, logging, and the ErrorEnvelope the API contract
// requires.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError — the canonical platform error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the analytics
// slide service. It satisfies the standard error interface and supports Go
// 1.13+ error wrapping so that errors.Is / errors.As / errors.Unwrap work
// transparently across all layers.
//
// Usage:
//
//	return errors.New(errors.CodeDataRangeError, "data must contain between 2 and 50 points")
//	return errors.Wrap(llmErr, errors.CodeLLMError, "insight generation call failed")
//	return errors.ResourceError(errors.CodeChartNotFound, "chart_type bar_exotic not registered")
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code Code

	// Message is the primary human-readable description of the error, suitable
	// for inclusion in API responses returned to callers.
	Message string

	// Field names the offending request field, when applicable (e.g. "data",
	// "analytics_type"). Empty when the error is not field-scoped.
	Field string

	// Details carries supplementary structured context — e.g. the allowed
	// enum values for INVALID_ANALYTICS_TYPE, or retry_after for rate limits.
	Details map[string]interface{}

	// Suggestion is a one-line human-readable hint naming the likely fix.
	Suggestion string

	// Retryable reports whether the caller can reasonably retry the request
	// unchanged (for transient failures) or after fixing the named field (for
	// validation failures). Defaults to Code.DefaultRetryable().
	Retryable bool

	// Cause is the underlying error that triggered this AppError, enabling
	// errors.Is / errors.As traversal of the full error chain.
	Cause error

	// Stack contains the formatted call-stack captured at the point of error
	// creation. Not included in Error() output; inspect directly for logging.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>" — the detail segment uses the
// wrapped cause's message when present, omitted otherwise.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ─────────────────────────────────────────────────────────────────────────────
// Fluent builder methods — all return a shallow copy, safe to call on nil.
// ─────────────────────────────────────────────────────────────────────────────

func (e *AppError) WithField(field string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Field = field
	return &clone
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Suggestion = suggestion
	return &clone
}

func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message. Retryable
// is initialised from Code.DefaultRetryable() and can be overridden with a
// fluent call if needed.
func New(code Code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: code.DefaultRetryable(),
		Stack:     captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error. If err is nil,
// Wrap returns nil so it can be used inline. When err is already an *AppError
// and code is empty, the original code is preserved.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == "" {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: code.DefaultRetryable(),
		Cause:     err,
		Stack:     captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code Code) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the Code from the first *AppError found in err's chain.
// Returns CodeUnknownError when a non-nil err holds no *AppError, and the
// empty Code when err is nil.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknownError
}

// AsAppError extracts the first *AppError in err's chain, constructing a
// CodeUnknownError/system wrapper when err is not already one. Used at the
// HTTP boundary so every response, including panics recovered by middleware,
// can be rendered through the same Envelope() path.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(err, CodeUnknownError, "an unexpected error occurred")
}
