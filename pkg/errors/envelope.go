package errors

// ErrorEnvelope is the wire format every failed API response uses. It is the
// exact shape described by the service's error handling design: a category,
// a stable code, a human message, and enough structured detail for the
// caller to decide whether and how to retry.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody is the `error` field of ErrorEnvelope.
type ErrorBody struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Category   Category               `json:"category"`
	Field      string                 `json:"field,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// Envelope renders this AppError into the wire-format ErrorEnvelope. Safe to
// call on nil (returns a generic internal error so handlers never panic on a
// missing error).
func (e *AppError) Envelope() ErrorEnvelope {
	if e == nil {
		e = New(CodeUnknownError, "an unexpected error occurred")
	}
	return ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Code:       e.Code,
			Message:    e.Message,
			Category:   e.Code.Category(),
			Field:      e.Field,
			Details:    e.Details,
			Retryable:  e.Retryable,
			Suggestion: e.Suggestion,
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factories mirroring the taxonomy's five categories
// ─────────────────────────────────────────────────────────────────────────────

// ValidationError constructs a validation-category AppError for the named
// field with a retry suggestion. Every validation error is retryable=true per
// the error handling design, so callers do not gate retries on category alone.
func ValidationError(code Code, field, message, suggestion string) *AppError {
	return New(code, message).WithField(field).WithSuggestion(suggestion)
}

// ProcessingError constructs a processing-category AppError (chart
// generation, layout assembly, LLM call failures).
func ProcessingError(code Code, message string) *AppError {
	return New(code, message)
}

// ResourceError constructs a resource-category AppError (not-found lookups).
func ResourceError(code Code, message string) *AppError {
	return New(code, message)
}

// RateLimitError constructs a rate_limit-category AppError carrying the
// number of seconds the caller must wait before retrying.
func RateLimitError(message string, retryAfterSeconds int) *AppError {
	return New(CodeRateLimitExceeded, message).
		WithDetail("retry_after", retryAfterSeconds).
		WithSuggestion("reduce request rate or wait before retrying")
}

// SystemError constructs a system-category AppError for unexpected internal
// failures that are not attributable to the caller.
func SystemError(message string) *AppError {
	return New(CodeUnknownError, message)
}
