package validation

import (
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/novelty-score/internal/types"
)

// MinTextLength is the minimum number of characters of proposal text, after trimming.
const MinTextLength = 10

// AdvisoryMaxUploadBytes is the documented upload limit. It is not enforced
// locally; the service rejects larger documents itself.
const AdvisoryMaxUploadBytes = 10 << 20

// SupportedExtensions lists the accepted document extensions, lowercase, without dot.
var SupportedExtensions = []string{"pdf", "docx"}

const (
	msgTooShort          = "Please enter at least 10 characters of text"
	msgUnsupportedFormat = "Please select a PDF or DOCX file"
	msgMissingFile       = "Please select a file to upload"
	msgMissingApp        = "Application number is required"
)

// Validate checks a candidate proposal. It performs no I/O.
func Validate(input types.CandidateInput) error {
	switch in := input.(type) {
	case types.TextInput:
		return ValidateText(in.Value)
	case *types.FileInput:
		if in == nil {
			return missingFile()
		}
		return ValidateFilename(in.Filename)
	default:
		return missingFile()
	}
}

// ValidateText fails with KindTooShort when the trimmed text is shorter than MinTextLength.
func ValidateText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return &ValidationError{Kind: KindTooShort, Field: "text", Message: msgTooShort}
	}
	return nil
}

// ValidateFilename fails with KindMissingFile for an empty name and with
// KindUnsupportedFormat when the extension is not pdf or docx.
func ValidateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return missingFile()
	}
	if !IsSupportedExtension(Extension(filename)) {
		return &ValidationError{Kind: KindUnsupportedFormat, Field: "file", Message: msgUnsupportedFormat}
	}
	return nil
}

// ValidateApplication checks an application check request.
func ValidateApplication(applicationNumber, text string) error {
	if strings.TrimSpace(applicationNumber) == "" {
		return &ValidationError{Kind: KindMissingApplication, Field: "application_number", Message: msgMissingApp}
	}
	return ValidateText(text)
}

// Extension returns the lowercase extension of the final path segment,
// without the dot. "draft.v2.docx" yields "docx"; a name without a dot yields "".
func Extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// IsSupportedExtension reports whether ext (lowercase, no dot) is accepted.
func IsSupportedExtension(ext string) bool {
	return slices.Contains(SupportedExtensions, ext)
}

func missingFile() error {
	return &ValidationError{Kind: KindMissingFile, Field: "file", Message: msgMissingFile}
}
