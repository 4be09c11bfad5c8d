package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/novelty-score/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TextLengthBoundary(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "nine characters", text: strings.Repeat("a", 9), wantErr: true},
		{name: "exactly ten", text: strings.Repeat("a", 10)},
		{name: "long text", text: "A sufficiently long proposal description..."},
		{name: "short", text: "short", wantErr: true},
		{name: "padding does not count", text: "   abcdefghi   ", wantErr: true},
		{name: "multibyte runes counted as characters", text: "éééééééééé"},
		{name: "empty", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(types.NewTextInput(tt.text))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTooShort)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, KindTooShort, vErr.Kind)
			assert.Equal(t, "Please enter at least 10 characters of text", vErr.Message)
		})
	}
}

func TestValidate_FileExtensions(t *testing.T) {
	tests := []struct {
		filename string
		want     error
	}{
		{filename: "Proposal.PDF"},
		{filename: "proposal.pdf"},
		{filename: "draft.v2.docx"},
		{filename: "Report.DocX"},
		{filename: "/tmp/archive.d/plan.docx"},
		{filename: `C:\proposals\plan.pdf`},
		{filename: "notes.txt", want: ErrUnsupportedFormat},
		{filename: "draft.docx.zip", want: ErrUnsupportedFormat},
		{filename: "README", want: ErrUnsupportedFormat},
		{filename: "pdf", want: ErrUnsupportedFormat},
		{filename: "dir.pdf/notes", want: ErrUnsupportedFormat},
		{filename: "", want: ErrMissingFile},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := Validate(types.NewFileInput(tt.filename, []byte("data")))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_MissingFile(t *testing.T) {
	var none *types.FileInput
	err := Validate(none)
	assert.ErrorIs(t, err, ErrMissingFile)

	err = Validate(nil)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestValidate_KindsAreDistinct(t *testing.T) {
	err := Validate(types.NewFileInput("notes.txt", nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, ErrTooShort)
	assert.NotErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), "Please select a PDF or DOCX file")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("Proposal.PDF"))
	assert.Equal(t, "docx", Extension("draft.v2.docx"))
	assert.Equal(t, "", Extension("Makefile"))
	assert.Equal(t, "", Extension("trailing."))
}

func TestValidateApplication(t *testing.T) {
	assert.NoError(t, ValidateApplication("APP-001", "enough text here"))
	assert.ErrorIs(t, ValidateApplication("  ", "enough text here"), ErrMissingApplication)
	assert.ErrorIs(t, ValidateApplication("APP-001", "tiny"), ErrTooShort)
}
