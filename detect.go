package textops

import (
	"context"
	"fmt"
	"strings"
)

// detectSampleRunes caps how much of the document is sent for language
// detection; the opening of a text is enough to identify its language.
const detectSampleRunes = 500

// DetectResponse contains the language detection result.
type DetectResponse struct {
	Language string `json:"language" desc:"Full language name, e.g. English"`
}

// Validate checks if the response is valid.
func (r DetectResponse) Validate() error {
	if strings.TrimSpace(r.Language) == "" {
		return fmt.Errorf("language required but empty")
	}
	return nil
}

// LanguageDetector identifies the language a document is written in. Its
// result feeds the language_detected metadata of every record.
type LanguageDetector struct {
	service *Service[DetectResponse]
}

// NewLanguageDetector creates a language detector bound to a provider.
func NewLanguageDetector(provider Provider, opts ...Option) *LanguageDetector {
	pipeline := newPipeline(provider, opts...)
	return &LanguageDetector{
		service: NewService[DetectResponse](pipeline, OpDetect, provider, DefaultRetryPolicy, DefaultTemperatureDeterministic),
	}
}

// WithRetryPolicy overrides the default retry policy.
func (d *LanguageDetector) WithRetryPolicy(policy RetryPolicy) *LanguageDetector {
	d.service.setRetryPolicy(policy)
	return d
}

// Fire detects the language of the given text.
func (d *LanguageDetector) Fire(ctx context.Context, text string) (DetectResponse, error) {
	sample := []rune(text)
	if len(sample) > detectSampleRunes {
		sample = sample[:detectSampleRunes]
	}

	prompt := &Prompt{
		Task:   "Identify the language of the provided text",
		Input:  string(sample),
		Schema: jsonSchemaFor[DetectResponse](),
		Constraints: []string{
			"language: full language name, e.g. \"English\", \"Spanish\", \"French\"",
		},
	}
	return d.service.Execute(ctx, prompt, 0)
}
