package textops

import (
	"context"
	"fmt"
	"time"
)

// Processor orchestrates one end-to-end operation: input checks, language
// detection, word count, the requested analysis, and record assembly.
// A record is produced only for a fully successful run.
type Processor struct {
	summarizer *Summarizer
	translator *Translator
	sentiment  *SentimentAnalyzer
	detector   *LanguageDetector
	now        func() time.Time
}

// NewProcessor creates a processor with one synapse per operation, all bound
// to the same provider and sharing the pipeline options.
func NewProcessor(provider Provider, opts ...Option) *Processor {
	return &Processor{
		summarizer: NewSummarizer(provider, opts...),
		translator: NewTranslator(provider, opts...),
		sentiment:  NewSentimentAnalyzer(provider, opts...),
		detector:   NewLanguageDetector(provider, opts...),
		now:        time.Now,
	}
}

// WithRetryPolicy overrides the retry policy for every operation.
func (p *Processor) WithRetryPolicy(policy RetryPolicy) *Processor {
	p.summarizer.WithRetryPolicy(policy)
	p.translator.WithRetryPolicy(policy)
	p.sentiment.WithRetryPolicy(policy)
	p.detector.WithRetryPolicy(policy)
	return p
}

// WithClock overrides the assembly-time clock.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// Run executes the full pipeline for one request. Errors propagate as values
// from the stage that produced them; no partial record is ever returned.
func (p *Processor) Run(ctx context.Context, req OperationRequest) (OutputRecord, error) {
	if err := req.Validate(); err != nil {
		return OutputRecord{}, err
	}

	detected, err := p.detector.Fire(ctx, req.SourceText)
	if err != nil {
		return OutputRecord{}, fmt.Errorf("language detection: %w", err)
	}

	wordCount := WordCount(req.SourceText)

	var result ValidatedResult
	switch req.Operation {
	case OpSummarize:
		r, ferr := p.summarizer.Fire(ctx, req.SourceText)
		if ferr != nil {
			return OutputRecord{}, ferr
		}
		result = r
	case OpTranslate:
		r, ferr := p.translator.Fire(ctx, req.SourceText, req.TargetLanguage)
		if ferr != nil {
			return OutputRecord{}, ferr
		}
		result = r
	case OpSentiment:
		r, ferr := p.sentiment.Fire(ctx, req.SourceText)
		if ferr != nil {
			return OutputRecord{}, ferr
		}
		result = r
	default:
		return OutputRecord{}, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}

	return Assemble(result, req, detected.Language, wordCount, p.now()), nil
}
