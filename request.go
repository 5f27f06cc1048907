package textops

import (
	"fmt"
	"strings"
)

// OperationRequest describes one user-initiated analysis run. It is immutable
// once constructed and owned by a single pipeline instance.
type OperationRequest struct {
	Operation      Operation
	SourceText     string
	FileName       string // identifier of the source document, carried into the record
	TargetLanguage string // Translate only
}

// Validate rejects requests that should never reach the provider.
func (r OperationRequest) Validate() error {
	switch r.Operation {
	case OpSummarize, OpSentiment:
	case OpTranslate:
		if strings.TrimSpace(r.TargetLanguage) == "" {
			return ErrMissingTargetLanguage
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, r.Operation)
	}
	if strings.TrimSpace(r.SourceText) == "" {
		return ErrEmptyInput
	}
	return nil
}

// CallRequest flows through the pipz pipeline for a single provider call.
// It is exclusively owned by one in-flight invocation.
type CallRequest struct {
	// Input fields
	Envelope    Envelope // Rendered prompt envelope
	Temperature float32  // Temperature parameter for response generation

	// Metadata fields
	RequestID    string    // Unique identifier for this request
	Operation    Operation // Operation being performed
	ProviderName string    // Name of the provider being used

	// Output fields (populated by the pipeline)
	Response string      // Raw text response from provider
	Usage    *TokenUsage // Token usage from provider response
}
