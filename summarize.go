package textops

import (
	"context"
	"fmt"
	"strings"
)

// Bounds on the key-point list.
const (
	minKeyPoints = 3
	maxKeyPoints = 5
)

// SummarizeResponse contains the summarization result.
type SummarizeResponse struct {
	Summary   string   `json:"summary" desc:"Concise summary of the text, 2-3 sentences"`
	KeyPoints []string `json:"key_points" desc:"The 3 to 5 most important points"`
}

// Validate checks if the response is valid.
func (r SummarizeResponse) Validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("summary required but empty")
	}
	if len(r.KeyPoints) < minKeyPoints || len(r.KeyPoints) > maxKeyPoints {
		return fmt.Errorf("key_points must contain %d-%d items, got %d", minKeyPoints, maxKeyPoints, len(r.KeyPoints))
	}
	for i, point := range r.KeyPoints {
		if strings.TrimSpace(point) == "" {
			return fmt.Errorf("key_points[%d] is empty", i)
		}
	}
	return nil
}

// Operation tags the result for record assembly.
func (SummarizeResponse) Operation() Operation { return OpSummarize }

// Summarizer generates a summary with key points for a document.
type Summarizer struct {
	service *Service[SummarizeResponse]
}

// NewSummarizer creates a summarizer bound to a provider.
func NewSummarizer(provider Provider, opts ...Option) *Summarizer {
	pipeline := newPipeline(provider, opts...)
	return &Summarizer{
		service: NewService[SummarizeResponse](pipeline, OpSummarize, provider, DefaultRetryPolicy, DefaultTemperatureAnalytical),
	}
}

// WithRetryPolicy overrides the default retry policy.
func (s *Summarizer) WithRetryPolicy(policy RetryPolicy) *Summarizer {
	s.service.setRetryPolicy(policy)
	return s
}

// Fire summarizes the given text.
func (s *Summarizer) Fire(ctx context.Context, text string) (SummarizeResponse, error) {
	prompt := &Prompt{
		Task:  "Summarize the provided text",
		Input: text,
		Directives: []string{
			"Write a concise summary of 2-3 sentences",
			fmt.Sprintf("List the %d to %d most important key points", minKeyPoints, maxKeyPoints),
		},
		Schema: jsonSchemaFor[SummarizeResponse](),
		Constraints: []string{
			fmt.Sprintf("key_points: %d to %d items", minKeyPoints, maxKeyPoints),
			"summary: plain text, no markdown",
		},
	}
	return s.service.Execute(ctx, prompt, 0)
}
