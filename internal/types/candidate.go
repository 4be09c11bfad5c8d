// Package types provides type definitions for structured data exchanged with the novelty scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"os"
	"path/filepath"
)

// InputKind identifies which variant of CandidateInput is held.
type InputKind string

const (
	// InputText is a proposal pasted as raw text
	InputText InputKind = "text"
	// InputFile is a proposal uploaded as a PDF or DOCX document
	InputFile InputKind = "file"
)

// CandidateInput is the proposal submitted for novelty evaluation.
// It is implemented only by TextInput and *FileInput.
type CandidateInput interface {
	Kind() InputKind
	isCandidateInput()
}

// TextInput is a candidate proposal given as raw text.
type TextInput struct {
	Value string
}

// NewTextInput wraps raw proposal text.
func NewTextInput(value string) TextInput {
	return TextInput{Value: value}
}

// Kind returns InputText.
func (TextInput) Kind() InputKind { return InputText }

func (TextInput) isCandidateInput() {}

// FileInput is a candidate proposal given as a document.
// A nil *FileInput, or one without a filename, means no file was selected.
type FileInput struct {
	Filename string
	Content  []byte
}

// NewFileInput wraps document bytes with their original filename.
func NewFileInput(filename string, content []byte) *FileInput {
	return &FileInput{Filename: filename, Content: content}
}

// Kind returns InputFile.
func (*FileInput) Kind() InputKind { return InputFile }

func (*FileInput) isCandidateInput() {}

// Size returns the document size in bytes.
func (f *FileInput) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Content))
}

// LoadFileInput reads a document from disk. Only the base name is kept as
// the filename.
func LoadFileInput(path string) (*FileInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return NewFileInput(filepath.Base(path), content), nil
}
