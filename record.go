package textops

import (
	"strings"
	"time"
)

// TimestampLayout is ISO8601 with microsecond precision. The assembly-time
// local clock is authoritative; values from the remote response are never
// used for the record timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// ValidatedResult is the closed union over the per-operation response types.
// An instance exists only if every required field was present and correctly
// typed; partially-valid responses never get this far.
type ValidatedResult interface {
	Validator
	Operation() Operation
}

// OutputRecord is the final, immutable result of one successful pipeline run,
// handed to the persister. Field names are the persisted JSON contract.
type OutputRecord struct {
	File             string          `json:"file"`
	UseCase          Operation       `json:"use_case"`
	Timestamp        string          `json:"timestamp"`
	Result           ValidatedResult `json:"result"`
	WordCount        int             `json:"word_count"`
	LanguageDetected string          `json:"language_detected"`
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Assemble combines a validated result with cross-cutting metadata. Pure
// combination: the result fields are carried into the record untouched.
func Assemble(result ValidatedResult, req OperationRequest, detectedLanguage string, wordCount int, now time.Time) OutputRecord {
	return OutputRecord{
		File:             req.FileName,
		UseCase:          result.Operation(),
		Timestamp:        now.Format(TimestampLayout),
		Result:           result,
		WordCount:        wordCount,
		LanguageDetected: detectedLanguage,
	}
}
