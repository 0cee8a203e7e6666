package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"promptforge/prompt"
)

// DocxExtractor handles Word documents (.docx) via the container's raw-text
// extraction.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DOCX extractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

// Extract decodes the docx container and flattens paragraphs and tables to
// plain text in document order.
func (e *DocxExtractor) Extract(name, _ string, data []byte) (prompt.NormalizedDocument, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("parse docx: %w", err))
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			fmt.Fprintln(&b, item)
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("document contains no text"))
	}
	return textDocument(name, text), nil
}

// Kind returns the content family this extractor handles.
func (e *DocxExtractor) Kind() Kind {
	return KindDocx
}
