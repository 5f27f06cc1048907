package textops

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// newTerminal creates the terminal processor that performs the provider call.
// The envelope's system instruction and sentinel-wrapped user payload become
// the two messages of the conversation.
func newTerminal(provider Provider) pipz.Chainable[*CallRequest] {
	return pipz.Apply("llm-call", func(ctx context.Context, req *CallRequest) (*CallRequest, error) {
		messages := []Message{
			{Role: RoleSystem, Content: req.Envelope.System},
			{Role: RoleUser, Content: req.Envelope.User},
		}

		resp, err := provider.Call(ctx, messages, req.Temperature)
		if err != nil {
			return req, err
		}
		req.Response = resp.Content
		req.Usage = &resp.Usage
		return req, nil
	})
}

// newPipeline builds the call pipeline: the provider terminal wrapped by any
// reliability options.
func newPipeline(provider Provider, opts ...Option) pipz.Chainable[*CallRequest] {
	var pipeline pipz.Chainable[*CallRequest] = newTerminal(provider)
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// Service provides type-safe invocation for a specific response type T.
// It owns the invoker and performs the strict decode-then-validate step that
// turns a raw payload into a ValidatedResult. T must implement Validator.
type Service[T Validator] struct {
	invoker            *Invoker
	operation          Operation
	providerName       string
	defaultTemperature float32
}

// NewService creates a Service for one operation over the given pipeline.
func NewService[T Validator](pipeline pipz.Chainable[*CallRequest], operation Operation, provider Provider, policy RetryPolicy, defaultTemperature float32) *Service[T] {
	return &Service[T]{
		invoker:            NewInvoker(pipeline, policy),
		operation:          operation,
		providerName:       provider.Name(),
		defaultTemperature: defaultTemperature,
	}
}

// setRetryPolicy rebuilds the invoker with a new policy, keeping the pipeline.
func (s *Service[T]) setRetryPolicy(policy RetryPolicy) {
	s.invoker = NewInvoker(s.invoker.pipeline, policy)
}

// Execute sends the prompt through the invoker and returns the decoded,
// validated response. A decode failure or validation failure yields a
// SchemaError and is never retried here: retry belongs to the invoker, for
// transport-level failures only.
func (s *Service[T]) Execute(ctx context.Context, prompt *Prompt, temperature float32) (T, error) {
	var result T

	if temperature <= 0 {
		temperature = s.defaultTemperature
	}

	if err := prompt.Validate(); err != nil {
		return result, err
	}

	req := &CallRequest{
		Envelope:     prompt.Envelope(),
		Temperature:  temperature,
		RequestID:    uuid.New().String(),
		Operation:    s.operation,
		ProviderName: s.providerName,
	}

	capitan.Info(ctx, RequestStarted,
		RequestIDKey.Field(req.RequestID),
		OperationKey.Field(string(s.operation)),
		ProviderKey.Field(s.providerName),
		TemperatureKey.Field(float64(temperature)),
	)

	processed, err := s.invoker.Send(ctx, req)
	if err != nil {
		capitan.Error(ctx, RequestFailed,
			RequestIDKey.Field(req.RequestID),
			OperationKey.Field(string(s.operation)),
			ProviderKey.Field(s.providerName),
			ErrorKey.Field(err.Error()),
		)
		return result, err
	}

	if strings.TrimSpace(processed.Response) == "" {
		return result, s.reject(ctx, req, errors.New("empty response body"), "parse_error")
	}

	// Strict decode: an unknown top-level field is a rejection, never a guess.
	decoder := json.NewDecoder(strings.NewReader(processed.Response))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&result); err != nil {
		return result, s.reject(ctx, req, err, "parse_error")
	}
	// The whole payload must be one JSON document; anything after the closing
	// brace means the response does not conform.
	if decoder.More() {
		return result, s.reject(ctx, req, errors.New("trailing data after response object"), "parse_error")
	}

	if err := result.Validate(); err != nil {
		return result, s.reject(ctx, req, err, "validation_error")
	}

	capitan.Info(ctx, RequestCompleted,
		RequestIDKey.Field(req.RequestID),
		OperationKey.Field(string(s.operation)),
		ProviderKey.Field(s.providerName),
		ResponseKey.Field(processed.Response),
	)

	return result, nil
}

// reject emits the rejection hook and wraps the cause as a SchemaError.
func (s *Service[T]) reject(ctx context.Context, req *CallRequest, cause error, errType string) error {
	capitan.Error(ctx, ResponseRejected,
		RequestIDKey.Field(req.RequestID),
		OperationKey.Field(string(s.operation)),
		ProviderKey.Field(s.providerName),
		ResponseKey.Field(req.Response),
		ErrorKey.Field(cause.Error()),
		ErrorTypeKey.Field(errType),
	)
	return &SchemaError{Operation: s.operation, Cause: cause}
}
