package textops

import (
	"context"
	"fmt"
	"strings"
)

// TranslateResponse contains the translation result.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text" desc:"The full translation of the text"`
	SourceLanguage string `json:"source_language" desc:"Language the text was written in"`
	TargetLanguage string `json:"target_language" desc:"Language the text was translated to"`
}

// Validate checks if the response is valid.
func (r TranslateResponse) Validate() error {
	if strings.TrimSpace(r.TranslatedText) == "" {
		return fmt.Errorf("translated_text required but empty")
	}
	if strings.TrimSpace(r.SourceLanguage) == "" {
		return fmt.Errorf("source_language required but empty")
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		return fmt.Errorf("target_language required but empty")
	}
	return nil
}

// Operation tags the result for record assembly.
func (TranslateResponse) Operation() Operation { return OpTranslate }

// Translator translates a document into a target language while preserving
// tone and meaning.
type Translator struct {
	service *Service[TranslateResponse]
}

// NewTranslator creates a translator bound to a provider.
func NewTranslator(provider Provider, opts ...Option) *Translator {
	pipeline := newPipeline(provider, opts...)
	return &Translator{
		service: NewService[TranslateResponse](pipeline, OpTranslate, provider, DefaultRetryPolicy, DefaultTemperatureCreative),
	}
}

// WithRetryPolicy overrides the default retry policy.
func (t *Translator) WithRetryPolicy(policy RetryPolicy) *Translator {
	t.service.setRetryPolicy(policy)
	return t
}

// Fire translates the given text into targetLanguage.
func (t *Translator) Fire(ctx context.Context, text, targetLanguage string) (TranslateResponse, error) {
	if strings.TrimSpace(targetLanguage) == "" {
		return TranslateResponse{}, ErrMissingTargetLanguage
	}

	prompt := &Prompt{
		Task:  fmt.Sprintf("Translate the provided text to %s", targetLanguage),
		Input: text,
		Directives: []string{
			"Preserve the original tone, style, and meaning",
			"Identify the language the text was written in",
		},
		Schema: jsonSchemaFor[TranslateResponse](),
		Constraints: []string{
			fmt.Sprintf("target_language: %q", targetLanguage),
			"source_language: full language name, e.g. \"English\"",
		},
	}
	return t.service.Execute(ctx, prompt, 0)
}
