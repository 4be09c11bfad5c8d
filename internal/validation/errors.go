// Package validation enforces the acceptance rules for candidate proposals
// before anything is sent to the scoring service.
package validation

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	// KindTooShort means the proposal text has fewer than MinTextLength characters
	KindTooShort Kind = "too_short"
	// KindUnsupportedFormat means the document is not a PDF or DOCX file
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindMissingFile means no document was selected
	KindMissingFile Kind = "missing_file"
	// KindMissingApplication means the application number is blank
	KindMissingApplication Kind = "missing_application"
)

var (
	// ErrTooShort matches any ValidationError of KindTooShort via errors.Is
	ErrTooShort = errors.New("text too short")
	// ErrUnsupportedFormat matches any ValidationError of KindUnsupportedFormat via errors.Is
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrMissingFile matches any ValidationError of KindMissingFile via errors.Is
	ErrMissingFile = errors.New("missing file")
	// ErrMissingApplication matches any ValidationError of KindMissingApplication via errors.Is
	ErrMissingApplication = errors.New("missing application number")
)

// ValidationError is a locally detected input problem. Message is shown to the user as is.
type ValidationError struct {
	Kind    Kind
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ValidationError) Is(target error) bool {
	return kindSentinel(e.Kind) == target
}

func kindSentinel(k Kind) error {
	switch k {
	case KindTooShort:
		return ErrTooShort
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindMissingFile:
		return ErrMissingFile
	case KindMissingApplication:
		return ErrMissingApplication
	default:
		return nil
	}
}
