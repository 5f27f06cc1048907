// Package fileio loads source documents for analysis. It supports plain text
// and PDF files and hands back decoded text regardless of original format.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Errors reported for invalid document paths and contents.
var (
	ErrNotAFile        = errors.New("path is not a file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("document contains no text")
)

// SupportedExtensions lists the document formats the loader accepts.
var SupportedExtensions = []string{".txt", ".pdf"}

// Document is the loaded, decoded content of a source file.
type Document struct {
	Content string // extracted text
	Name    string // base name without extension, used as the record identifier
}

// Read loads the document at path, extracting text according to its
// extension.
func Read(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var content string
	switch ext {
	case ".txt":
		content, err = readText(path)
	case ".pdf":
		content, err = readPDF(path)
	default:
		return Document{}, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedType, ext, strings.Join(SupportedExtensions, ", "))
	}
	if err != nil {
		return Document{}, err
	}

	if strings.TrimSpace(content) == "" {
		return Document{}, ErrEmptyDocument
	}

	return Document{
		Content: content,
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading .txt file: %w", err)
	}
	return string(data), nil
}
