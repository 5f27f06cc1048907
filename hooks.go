package textops

import "github.com/zoobzio/capitan"

// Signals for hook events.
const (
	RequestStarted        = capitan.Signal("llm.request.started")
	RequestCompleted      = capitan.Signal("llm.request.completed")
	RequestFailed         = capitan.Signal("llm.request.failed")
	CallRetrying          = capitan.Signal("llm.call.retrying")
	ProviderCallStarted   = capitan.Signal("llm.provider.call.started")
	ProviderCallCompleted = capitan.Signal("llm.provider.call.completed")
	ProviderCallFailed    = capitan.Signal("llm.provider.call.failed")
	ResponseRejected      = capitan.Signal("llm.response.rejected")
)

// Keys for hook event fields.
var (
	// Request identification.
	RequestIDKey = capitan.NewStringKey("llm.request.id")
	OperationKey = capitan.NewStringKey("llm.operation")

	// Retry state.
	AttemptKey = capitan.NewIntKey("llm.attempt")
	DelayMsKey = capitan.NewIntKey("llm.delay.ms")

	// Input/output data.
	InputKey    = capitan.NewStringKey("llm.input")
	OutputKey   = capitan.NewStringKey("llm.output")
	ResponseKey = capitan.NewStringKey("llm.response")

	// Error information.
	ErrorKey     = capitan.NewStringKey("llm.error")
	ErrorTypeKey = capitan.NewStringKey("llm.error.type")

	// Provider information.
	ProviderKey    = capitan.NewStringKey("llm.provider")
	ModelKey       = capitan.NewStringKey("llm.model")
	TemperatureKey = capitan.NewFloat64Key("llm.temperature")

	// Provider metrics.
	PromptTokensKey     = capitan.NewIntKey("llm.tokens.prompt")
	CompletionTokensKey = capitan.NewIntKey("llm.tokens.completion")
	TotalTokensKey      = capitan.NewIntKey("llm.tokens.total")
	DurationMsKey       = capitan.NewIntKey("llm.duration.ms")

	// HTTP/API metadata.
	HTTPStatusCodeKey = capitan.NewIntKey("llm.http.status.code")
	APIErrorTypeKey   = capitan.NewStringKey("llm.api.error.type")
)
