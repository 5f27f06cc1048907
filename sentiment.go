package textops

import (
	"context"
	"fmt"
	"strings"
)

// The closed sentiment value set. Anything outside it is rejected, never
// coerced.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentResponse contains the sentiment analysis result.
type SentimentResponse struct {
	Sentiment   string  `json:"sentiment" choices:"positive,neutral,negative" desc:"Overall sentiment of the text"`
	Confidence  float64 `json:"confidence" desc:"Confidence in the classification, 0.0 to 1.0"`
	Explanation string  `json:"explanation" desc:"Brief explanation of the sentiment"`
}

// Validate checks if the response is valid. Membership in the closed value
// set is checked case-insensitively; no other normalization is accepted.
func (r SentimentResponse) Validate() error {
	switch strings.ToLower(strings.TrimSpace(r.Sentiment)) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
	default:
		return fmt.Errorf("sentiment must be one of %s, %s, %s; got %q",
			SentimentPositive, SentimentNeutral, SentimentNegative, r.Sentiment)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence must be 0-1, got %f", r.Confidence)
	}
	if strings.TrimSpace(r.Explanation) == "" {
		return fmt.Errorf("explanation required but empty")
	}
	return nil
}

// Operation tags the result for record assembly.
func (SentimentResponse) Operation() Operation { return OpSentiment }

// SentimentAnalyzer classifies the overall sentiment and tone of a document.
type SentimentAnalyzer struct {
	service *Service[SentimentResponse]
}

// NewSentimentAnalyzer creates a sentiment analyzer bound to a provider.
func NewSentimentAnalyzer(provider Provider, opts ...Option) *SentimentAnalyzer {
	pipeline := newPipeline(provider, opts...)
	return &SentimentAnalyzer{
		service: NewService[SentimentResponse](pipeline, OpSentiment, provider, DefaultRetryPolicy, DefaultTemperatureAnalytical),
	}
}

// WithRetryPolicy overrides the default retry policy.
func (s *SentimentAnalyzer) WithRetryPolicy(policy RetryPolicy) *SentimentAnalyzer {
	s.service.setRetryPolicy(policy)
	return s
}

// Fire analyzes the sentiment of the given text.
func (s *SentimentAnalyzer) Fire(ctx context.Context, text string) (SentimentResponse, error) {
	prompt := &Prompt{
		Task:  "Analyze the sentiment of the provided text",
		Input: text,
		Directives: []string{
			"Classify the overall sentiment",
			"Provide a confidence score and a brief explanation",
		},
		Schema: jsonSchemaFor[SentimentResponse](),
		Constraints: []string{
			fmt.Sprintf("sentiment: %s, %s, or %s only", SentimentPositive, SentimentNeutral, SentimentNegative),
			"confidence: 0.0 to 1.0",
		},
	}

	response, err := s.service.Execute(ctx, prompt, 0)
	if err != nil {
		return response, err
	}

	// Canonical lowercase form in the persisted record.
	response.Sentiment = strings.ToLower(strings.TrimSpace(response.Sentiment))
	return response, nil
}
