package banking

import "fmt"

// ValidationError means the caller sent missing or malformed input.
// The message is user-facing and surfaces as HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError means the core-banking system rejected or failed to
// service a call. The wrapped detail is for logs only; callers get a
// generic message.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}
