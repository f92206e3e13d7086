package pdfext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/resumatch/backend/internal/domain"
)

const (
	// DefaultMaxFileSize is the upload limit when none is configured.
	DefaultMaxFileSize = 10 << 20 // 10MB

	// DefaultMinTextLength is the minimum number of extracted characters
	// for a resume to be considered usable.
	DefaultMinTextLength = 50
)

// Extractor pulls plain text out of uploaded PDF resumes and validates the
// result. It implements domain.ResumeTextExtractor.
type Extractor struct {
	maxFileSize   int64
	minTextLength int
}

// NewExtractor creates a PDF text extractor with the given limits. Zero or
// negative limits fall back to the defaults.
func NewExtractor(maxFileSize int64, minTextLength int) *Extractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}

	return &Extractor{
		maxFileSize:   maxFileSize,
		minTextLength: minTextLength,
	}
}

// ExtractText extracts the plain text of a PDF upload. Validation failures on
// the upload itself surface as domain.ErrInvalidInput; failures to get usable
// text out of a structurally accepted file surface as domain.ErrExtractionFailed.
func (e *Extractor) ExtractText(filename string, data []byte) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", fmt.Errorf("%w: invalid file format, only PDF files are accepted", domain.ErrInvalidInput)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("%w: uploaded PDF file is empty", domain.ErrInvalidInput)
	}

	if int64(len(data)) > e.maxFileSize {
		return "", fmt.Errorf("%w: PDF file too large, maximum size is %dMB", domain.ErrInvalidInput, e.maxFileSize/(1<<20))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", classifyReaderError(err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", fmt.Errorf("%w: PDF contains no pages", domain.ErrExtractionFailed)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the whole resume
			continue
		}

		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("%w: could not extract text, the file may be scanned or image-based", domain.ErrExtractionFailed)
	}

	if len(text) < e.minTextLength {
		return "", fmt.Errorf("%w: resume text is too short (found %d characters, minimum %d required)",
			domain.ErrExtractionFailed, len(text), e.minTextLength)
	}

	return text, nil
}

// classifyReaderError maps a PDF parser error to the failure the caller can
// act on: encrypted files get a dedicated message, everything else is treated
// as corrupt or invalid.
func classifyReaderError(err error) error {
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("%w: PDF is password-protected or encrypted, please upload an unprotected PDF", domain.ErrExtractionFailed)
	}

	return fmt.Errorf("%w: PDF file appears to be corrupted or invalid", domain.ErrExtractionFailed)
}
