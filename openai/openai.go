// Package openai implements the textops Provider interface for the OpenAI
// chat-completions API (and API-compatible services).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zoobzio/capitan"

	"github.com/zoobzio/textops"
)

// Provider implements the textops Provider interface for OpenAI.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	name       string
}

// Config holds configuration for the OpenAI provider.
type Config struct {
	APIKey  string
	Model   string        // e.g. "gpt-4-turbo-preview"
	BaseURL string        // Optional, defaults to "https://api.openai.com/v1"
	Timeout time.Duration // Optional, defaults to 60s
}

// New creates a new OpenAI provider. A missing credential is reported here,
// before any call is attempted, as a non-retryable error.
func New(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: set OPENAI_API_KEY in the environment", textops.ErrMissingCredential)
	}
	if config.Model == "" {
		config.Model = "gpt-4-turbo-preview"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Provider{
		apiKey:  config.APIKey,
		model:   config.Model,
		baseURL: config.BaseURL,
		name:    "openai",
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Call sends messages to OpenAI in JSON mode and returns the response with
// usage stats. Failures are classified for the invoker: network errors, rate
// limits, and 5xx responses are transient; credential problems and request
// rejections are terminal.
func (p *Provider) Call(ctx context.Context, messages []textops.Message, temperature float32) (*textops.ProviderResponse, error) {
	startTime := time.Now()

	capitan.Info(ctx, textops.ProviderCallStarted,
		textops.ProviderKey.Field(p.name),
		textops.ModelKey.Field(p.model),
	)

	apiMessages := make([]message, len(messages))
	for i, msg := range messages {
		apiMessages[i] = message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	requestBody := chatCompletionRequest{
		Model:       p.model,
		Messages:    apiMessages,
		Temperature: temperature,
		ResponseFormat: &responseFormat{
			Type: "json_object",
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, &textops.TerminalError{Cause: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &textops.TerminalError{Cause: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.emitFailure(ctx, startTime, 0, err.Error(), "network_error")
		return nil, &textops.TransientError{Cause: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.emitFailure(ctx, startTime, resp.StatusCode, err.Error(), "network_error")
		return nil, &textops.TransientError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.classifyStatus(ctx, startTime, resp.StatusCode, body)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		p.emitFailure(ctx, startTime, resp.StatusCode, err.Error(), "decode_error")
		return nil, &textops.TransientError{Cause: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		p.emitFailure(ctx, startTime, resp.StatusCode, "empty completion", "empty_response")
		return nil, &textops.TransientError{Cause: fmt.Errorf("empty response from API")}
	}

	duration := time.Since(startTime)
	capitan.Info(ctx, textops.ProviderCallCompleted,
		textops.ProviderKey.Field(p.name),
		textops.ModelKey.Field(p.model),
		textops.DurationMsKey.Field(int(duration.Milliseconds())),
		textops.PromptTokensKey.Field(completion.Usage.PromptTokens),
		textops.CompletionTokensKey.Field(completion.Usage.CompletionTokens),
		textops.TotalTokensKey.Field(completion.Usage.TotalTokens),
	)

	return &textops.ProviderResponse{
		Content: completion.Choices[0].Message.Content,
		Usage: textops.TokenUsage{
			Prompt:     completion.Usage.PromptTokens,
			Completion: completion.Usage.CompletionTokens,
			Total:      completion.Usage.TotalTokens,
		},
	}, nil
}

// classifyStatus maps non-200 responses onto the transient/terminal taxonomy.
func (p *Provider) classifyStatus(ctx context.Context, startTime time.Time, status int, body []byte) error {
	detail := fmt.Sprintf("status %d", status)
	errType := "api_error"

	var errorResp errorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		detail = errorResp.Error.Message
		if errorResp.Error.Type != "" {
			errType = errorResp.Error.Type
		}
	}

	p.emitFailure(ctx, startTime, status, detail, errType)

	switch {
	case status == http.StatusTooManyRequests:
		return &textops.TransientError{Cause: fmt.Errorf("rate limit exceeded: %s", detail)}
	case status >= 500:
		return &textops.TransientError{Cause: fmt.Errorf("openai server error (%d): %s", status, detail)}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &textops.TerminalError{Cause: fmt.Errorf("%w: openai rejected credentials (%d): %s", textops.ErrMissingCredential, status, detail)}
	default:
		return &textops.TerminalError{Cause: fmt.Errorf("openai error (%d): %s", status, detail)}
	}
}

func (p *Provider) emitFailure(ctx context.Context, startTime time.Time, status int, detail, errType string) {
	fields := []capitan.Field{
		textops.ProviderKey.Field(p.name),
		textops.ModelKey.Field(p.model),
		textops.DurationMsKey.Field(int(time.Since(startTime).Milliseconds())),
		textops.ErrorKey.Field(detail),
		textops.APIErrorTypeKey.Field(errType),
	}
	if status != 0 {
		fields = append(fields, textops.HTTPStatusCodeKey.Field(status))
	}
	capitan.Error(ctx, textops.ProviderCallFailed, fields...)
}

// Wire types for the chat-completions API.

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
