package extract

import (
	"fmt"
	"strings"

	"promptforge/prompt"
)

// TextExtractor handles already-plain-text files. The content passes through
// verbatim, re-encoded for transport, and stands as its own preview source.
type TextExtractor struct{}

// NewTextExtractor creates a new plain text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract re-encodes the text for transport. A file with no content produces
// an extraction failure, not an empty document.
func (e *TextExtractor) Extract(name, _ string, data []byte) (prompt.NormalizedDocument, error) {
	if strings.TrimSpace(string(data)) == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("document contains no text"))
	}
	return textDocument(name, string(data)), nil
}

// Kind returns the content family this extractor handles.
func (e *TextExtractor) Kind() Kind {
	return KindText
}

// MarkdownExtractor handles markdown files. Markdown is carried as-is: the
// markup survives extraction because the downstream model reads it natively.
type MarkdownExtractor struct{}

// NewMarkdownExtractor creates a new markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

// Extract re-encodes the markdown source for transport.
func (e *MarkdownExtractor) Extract(name, _ string, data []byte) (prompt.NormalizedDocument, error) {
	if strings.TrimSpace(string(data)) == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("document contains no text"))
	}
	return textDocument(name, string(data)), nil
}

// Kind returns the content family this extractor handles.
func (e *MarkdownExtractor) Kind() Kind {
	return KindMarkdown
}
