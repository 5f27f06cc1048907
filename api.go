// Package textops turns a document plus a requested analysis operation into a
// verified, schema-conformant result via a hosted chat-completions API.
//
// The pipeline for one operation is: build a prompt that isolates the untrusted
// source text behind sentinel markers, invoke the provider with retry and
// exponential backoff for transient failures, strictly decode and validate the
// response against the operation's schema, and assemble the validated result
// with cross-cutting metadata into an OutputRecord.
//
// Basic usage:
//
//	provider, _ := openai.New(openai.Config{APIKey: key})
//	processor := textops.NewProcessor(provider, textops.WithTimeout(60*time.Second))
//	record, err := processor.Run(ctx, textops.OperationRequest{
//		Operation:  textops.OpSummarize,
//		SourceText: text,
//		FileName:   "report",
//	})
package textops

import "context"

// Operation selects the prompt template and response schema for a run.
type Operation string

// Supported operations. OpDetect is used internally for the language metadata
// attached to every record and never appears as a record's use case.
const (
	OpSummarize Operation = "summarize"
	OpTranslate Operation = "translate"
	OpSentiment Operation = "sentiment"
	OpDetect    Operation = "detect_language"
)

// Provider defines the interface for LLM providers.
// Providers accept conversation messages and return responses with usage stats.
type Provider interface {
	// Call sends messages to the LLM and returns the response with usage stats.
	// Messages are in chronological order (system instruction first).
	// Failures must be classified via TransientError/TerminalError so the
	// invoker can decide whether retrying is worthwhile.
	Call(ctx context.Context, messages []Message, temperature float32) (*ProviderResponse, error)

	// Name returns the provider identifier (e.g. "openai").
	Name() string
}

// Validator defines the interface for response validation.
// All response types must implement this to ensure LLM outputs are valid.
type Validator interface {
	Validate() error
}

// Message represents a single message in a provider conversation.
type Message struct {
	Role    string // RoleUser, RoleAssistant, or RoleSystem
	Content string // The message content
}

// Role constants for message types.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// TokenUsage contains token counts from a provider response.
type TokenUsage struct {
	Prompt     int // Tokens used by the prompt/messages
	Completion int // Tokens used by the completion/response
	Total      int // Total tokens used
}

// ProviderResponse contains the response from an LLM provider.
type ProviderResponse struct {
	Content string     // The text response content
	Usage   TokenUsage // Token usage statistics
}

// Default temperatures per operation. Lower values produce more deterministic
// outputs; translation benefits from slightly more freedom than analysis.
const (
	// DefaultTemperatureDeterministic is used for language detection, where
	// the answer should not vary between runs.
	DefaultTemperatureDeterministic float32 = 0.1

	// DefaultTemperatureAnalytical is used for summarization and sentiment
	// analysis.
	DefaultTemperatureAnalytical float32 = 0.2

	// DefaultTemperatureCreative is used for translation.
	DefaultTemperatureCreative float32 = 0.3
)
