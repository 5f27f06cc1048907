package textops

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTranslateBasic(t *testing.T) {
	provider := NewMockProviderWithResponse(`{
		"translated_text": "Hola mundo",
		"source_language": "English",
		"target_language": "Spanish"
	}`)

	translator := NewTranslator(provider)

	result, err := translator.Fire(context.Background(), "Hello world", "Spanish")
	if err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if result.TranslatedText != "Hola mundo" {
		t.Errorf("TranslatedText = %q", result.TranslatedText)
	}
	if result.SourceLanguage != "English" {
		t.Errorf("SourceLanguage = %q", result.SourceLanguage)
	}
	if result.TargetLanguage != "Spanish" {
		t.Errorf("TargetLanguage = %q", result.TargetLanguage)
	}
}

// A response missing source_language violates the schema; no result escapes.
func TestTranslateMissingSourceLanguageRejected(t *testing.T) {
	provider := NewMockProviderWithResponse(`{
		"translated_text": "Hola mundo",
		"target_language": "Spanish"
	}`)

	translator := NewTranslator(provider).WithRetryPolicy(fastPolicy())

	_, err := translator.Fire(context.Background(), "Hello world", "Spanish")

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if provider.Calls() != 1 {
		t.Errorf("schema violations must not be retried, calls = %d", provider.Calls())
	}
}

func TestTranslateMissingTargetLanguage(t *testing.T) {
	provider := NewMockProviderWithResponse(`{}`)
	translator := NewTranslator(provider)

	_, err := translator.Fire(context.Background(), "Hello world", "  ")
	if !errors.Is(err, ErrMissingTargetLanguage) {
		t.Fatalf("expected ErrMissingTargetLanguage, got %v", err)
	}
	if provider.Calls() != 0 {
		t.Errorf("no call expected without a target language, calls = %d", provider.Calls())
	}
}

func TestTranslateValidate(t *testing.T) {
	valid := TranslateResponse{TranslatedText: "t", SourceLanguage: "English", TargetLanguage: "Spanish"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for name, response := range map[string]TranslateResponse{
		"empty translation":     {SourceLanguage: "English", TargetLanguage: "Spanish"},
		"empty source language": {TranslatedText: "t", TargetLanguage: "Spanish"},
		"empty target language": {TranslatedText: "t", SourceLanguage: "English"},
	} {
		if err := response.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTranslatePromptNamesTargetLanguage(t *testing.T) {
	var system string
	provider := NewMockProviderWithCallback(func(_ context.Context, messages []Message, _ float32) (*ProviderResponse, error) {
		system = messages[0].Content
		return &ProviderResponse{Content: `{"translated_text": "x", "source_language": "English", "target_language": "French"}`}, nil
	})

	if _, err := NewTranslator(provider).Fire(context.Background(), "text", "French"); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if !strings.Contains(system, "French") {
		t.Error("system instruction should name the target language")
	}
	if !strings.Contains(system, `"source_language"`) {
		t.Error("system instruction should state the source_language field")
	}
}
