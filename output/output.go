// Package output persists validated analysis records as JSON files under a
// deterministic, collision-resistant name.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zoobzio/textops"
)

// filenameLayout is the timestamp portion of a persisted filename.
const filenameLayout = "2006-01-02_15-04-05"

// ErrInvalidRecord indicates a record that is missing required fields and
// must not be persisted.
var ErrInvalidRecord = errors.New("invalid output record")

// Writer saves OutputRecords under a directory, creating it on demand.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save writes the record as indented JSON and returns the written path.
// The filename combines source identifier, operation, and timestamp:
// {file}_{use_case}_{YYYY-MM-DD_HH-MM-SS}.json.
func (w *Writer) Save(record textops.OutputRecord) (string, error) {
	if err := validate(record); err != nil {
		return "", err
	}

	assembled, err := time.Parse(textops.TimestampLayout, record.Timestamp)
	if err != nil {
		return "", fmt.Errorf("%w: bad timestamp %q: %v", ErrInvalidRecord, record.Timestamp, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json", record.File, record.UseCase, assembled.Format(filenameLayout))
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}

	return path, nil
}

// validate rejects records that cannot have come from a successful pipeline
// run.
func validate(record textops.OutputRecord) error {
	switch record.UseCase {
	case textops.OpSummarize, textops.OpTranslate, textops.OpSentiment:
	default:
		return fmt.Errorf("%w: use_case %q", ErrInvalidRecord, record.UseCase)
	}
	if record.File == "" {
		return fmt.Errorf("%w: missing file identifier", ErrInvalidRecord)
	}
	if record.Result == nil {
		return fmt.Errorf("%w: missing result", ErrInvalidRecord)
	}
	if record.WordCount < 0 {
		return fmt.Errorf("%w: negative word_count", ErrInvalidRecord)
	}
	return nil
}
