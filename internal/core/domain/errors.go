package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrCorpusMissing indicates the configured corpus root does not
	// exist. This is a fatal configuration error: the process must not
	// start without a corpus.
	ErrCorpusMissing = errors.New("corpus directory missing")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates a file format with no normaliser.
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// ErrMalformedToolCall indicates an unknown tool name or invalid
	// arguments. Recoverable: the dialogue turn continues.
	ErrMalformedToolCall = errors.New("malformed tool call")

	// ErrToolTimeout indicates a tool call exceeded its deadline.
	ErrToolTimeout = errors.New("tool call timed out")

	// ErrOrderNotFound indicates the order API has no such order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderServiceUnavailable indicates order lookup is not
	// configured (no store credentials).
	ErrOrderServiceUnavailable = errors.New("order service unavailable")
)

// IngestError is a non-fatal per-file ingestion failure. The offending
// file is skipped and ingestion of the remaining corpus continues.
type IngestError struct {
	// File is the corpus file that failed.
	File string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// OrderAPIError is an external collaborator failure from the order API.
// It carries enough detail to diagnose without leaking the full response.
type OrderAPIError struct {
	// Method and Path identify the failed request.
	Method string
	Path   string

	// StatusCode is the HTTP status, zero for transport failures.
	StatusCode int

	// CallLimit is the X-Shopify-Shop-Api-Call-Limit header, if present.
	CallLimit string

	// RetryAfter is the Retry-After header, if present.
	RetryAfter string

	// Body is a truncated response body preview.
	Body string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *OrderAPIError) Error() string {
	msg := fmt.Sprintf("order API %s %s failed", e.Method, e.Path)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.CallLimit != "" {
		msg += fmt.Sprintf(", call-limit=%s", e.CallLimit)
	}
	if e.RetryAfter != "" {
		msg += fmt.Sprintf(", retry-after=%s", e.RetryAfter)
	}
	if e.Body != "" {
		msg += fmt.Sprintf(", body=%s", e.Body)
	}
	return msg
}

// Unwrap returns the underlying transport error.
func (e *OrderAPIError) Unwrap() error {
	return e.Err
}
