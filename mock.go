package textops

import "context"

// MockProvider simulates provider behavior for testing without network I/O.
// The zero value is not useful; construct via one of the New helpers.
type MockProvider struct {
	name     string
	fixed    string
	callback func(ctx context.Context, messages []Message, temperature float32) (*ProviderResponse, error)
	script   []ScriptStep
	calls    int
}

// ScriptStep is one canned outcome for a scripted provider.
type ScriptStep struct {
	Response string
	Err      error
}

// NewMockProviderWithResponse creates a mock that always returns the given
// response body.
func NewMockProviderWithResponse(response string) *MockProvider {
	return &MockProvider{name: "mock-fixed", fixed: response}
}

// NewMockProviderWithCallback creates a mock that delegates to a function.
func NewMockProviderWithCallback(callback func(ctx context.Context, messages []Message, temperature float32) (*ProviderResponse, error)) *MockProvider {
	return &MockProvider{name: "mock-callback", callback: callback}
}

// NewScriptedProvider creates a mock that plays back one step per call, in
// order. Calls past the end of the script repeat the last step.
func NewScriptedProvider(steps ...ScriptStep) *MockProvider {
	return &MockProvider{name: "mock-scripted", script: steps}
}

// Name returns the provider identifier.
func (m *MockProvider) Name() string { return m.name }

// Calls reports how many times Call was invoked.
func (m *MockProvider) Calls() int { return m.calls }

// Call returns the next canned outcome.
func (m *MockProvider) Call(ctx context.Context, messages []Message, temperature float32) (*ProviderResponse, error) {
	m.calls++

	if m.callback != nil {
		return m.callback(ctx, messages, temperature)
	}

	if len(m.script) > 0 {
		step := m.script[len(m.script)-1]
		if m.calls <= len(m.script) {
			step = m.script[m.calls-1]
		}
		if step.Err != nil {
			return nil, step.Err
		}
		return &ProviderResponse{Content: step.Response}, nil
	}

	return &ProviderResponse{Content: m.fixed}, nil
}
