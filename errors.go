package textops

import (
	"errors"
	"fmt"
)

// Sentinel errors for input and credential problems. Both are reported before
// any outbound call is made and are never retried.
var (
	// ErrEmptyInput indicates the source text was empty or whitespace-only.
	ErrEmptyInput = errors.New("source text is empty")

	// ErrMissingTargetLanguage indicates a translation request without a
	// target language.
	ErrMissingTargetLanguage = errors.New("target language is required for translation")

	// ErrUnknownOperation indicates an operation outside the supported set.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrMissingCredential indicates no API credential was supplied.
	ErrMissingCredential = errors.New("missing API credential")
)

// TransientError marks a failure worth retrying: network errors, timeouts,
// rate limits, and server-side (5xx) failures.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient call failure: %v", e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// TerminalError marks a failure that retrying cannot help: bad credentials or
// a request the remote service rejected outright.
type TerminalError struct {
	Cause error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal call failure: %v", e.Cause)
}

func (e *TerminalError) Unwrap() error { return e.Cause }

// ExhaustedError is returned after the attempt ceiling is reached on
// transient failures. It carries the last underlying cause.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("call failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// SchemaError indicates a response that decoded but failed shape, type, or
// range checks for the requested operation, or did not decode at all.
// Schema violations are terminal for the call and are never retried.
type SchemaError struct {
	Operation Operation
	Cause     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s response violates schema: %v", e.Operation, e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// IsTerminal reports whether err is classified as non-retryable.
func IsTerminal(err error) bool {
	var terminal *TerminalError
	return errors.As(err, &terminal)
}

// IsTransient reports whether err is explicitly classified as retryable.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}
