package client

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionTypes = map[string]string{
	"pdf":  mimePDF,
	"docx": mimeDOCX,
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// ContentType picks the part content type for an upload. Sniffed content
// wins when it is a PDF or DOCX; otherwise the extension decides.
func ContentType(file *types.FileInput) string {
	if file == nil {
		return "application/octet-stream"
	}
	if detected := mimetype.Detect(file.Content); detected.Is(mimePDF) || detected.Is(mimeDOCX) {
		return detected.String()
	}
	if ct, ok := extensionTypes[validation.Extension(file.Filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// encodeUpload builds a multipart body with the document under "file" and
// any extra text fields.
func (c *Client) encodeUpload(file *types.FileInput, fields map[string]string) ([]byte, string, error) {
	if file == nil || file.Filename == "" {
		return nil, "", errors.New("no file to upload")
	}

	if c.verbose && file.Size() > validation.AdvisoryMaxUploadBytes {
		log.Printf("[VERBOSE] %s is %s, above the documented %s upload limit; the service may reject it",
			file.Filename,
			humanize.Bytes(uint64(file.Size())),
			humanize.Bytes(validation.AdvisoryMaxUploadBytes))
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Filename)))
	header.Set("Content-Type", ContentType(file))

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
