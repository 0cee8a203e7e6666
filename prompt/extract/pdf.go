package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"promptforge/prompt"
)

// PDFExtractor handles PDF files, extracting text page by page in page order.
// A document with no extractable text (image-only pages) is an extraction
// failure, not a crash.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract concatenates per-page text with paragraph breaks between pages.
func (e *PDFExtractor) Extract(name, _ string, data []byte) (doc prompt.NormalizedDocument, err error) {
	// The pdf reader panics on some malformed inputs; fold those into the
	// extraction-failure path so sibling files keep going.
	defer func() {
		if r := recover(); r != nil {
			doc = prompt.NormalizedDocument{}
			err = extractionFailed(name, fmt.Errorf("malformed pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("open pdf: %w", err))
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("no extractable text"))
	}
	return textDocument(name, text), nil
}

// Kind returns the content family this extractor handles.
func (e *PDFExtractor) Kind() Kind {
	return KindPDF
}
