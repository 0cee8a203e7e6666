// Package extract converts raw uploaded files into normalized documents.
// Each supported format kind is bound to one extractor; dispatch goes by
// declared media type first, then by filename extension for container formats
// that arrive with a generic media type.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"promptforge/prompt"
)

// Kind identifies a supported content family.
type Kind string

const (
	KindImage    Kind = "image"
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindDocx     Kind = "docx"
	KindXlsx     Kind = "xlsx"
	KindPDF      Kind = "pdf"
	KindUnknown  Kind = "unknown"
)

// ErrUnsupported is returned when no extractor handles the file's kind. The
// caller surfaces it and drops the file; no partial record is produced.
var ErrUnsupported = errors.New("unsupported file type")

// ExtractionError means an extractor ran but could not produce content, e.g.
// an image-only PDF or a corrupt container.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionFailed(name string, err error) error {
	return &ExtractionError{Name: name, Err: err}
}

// Extractor converts one raw file into a normalized document.
type Extractor interface {
	// Kind returns the content family this extractor handles.
	Kind() Kind

	// Extract converts the raw bytes into a normalized document. mimeType is
	// the media type declared by the file selection surface.
	Extract(name, mimeType string, data []byte) (prompt.NormalizedDocument, error)
}

// KindOf resolves the format kind from the declared media type and, where that
// is ambiguous, the filename extension.
func KindOf(mimeType, name string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case mimeType == "text/plain":
		return KindText
	case mimeType == "text/markdown":
		return KindMarkdown
	case mimeType == "text/html":
		return KindHTML
	case mimeType == "application/pdf":
		return KindPDF
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "txt":
		return KindText
	case "md", "markdown":
		return KindMarkdown
	case "html", "htm":
		return KindHTML
	case "docx":
		return KindDocx
	case "xlsx", "xls":
		return KindXlsx
	case "pdf":
		return KindPDF
	default:
		return KindUnknown
	}
}

// Registry holds all registered extractors keyed by kind.
type Registry struct {
	extractors map[Kind]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[Kind]Extractor)}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e Extractor) {
	r.extractors[e.Kind()] = e
}

// Extract dispatches the file to the extractor for its kind.
// Returns ErrUnsupported when the kind has no extractor.
func (r *Registry) Extract(name, mimeType string, data []byte) (prompt.NormalizedDocument, error) {
	kind := KindOf(mimeType, name)
	e, ok := r.extractors[kind]
	if !ok {
		return prompt.NormalizedDocument{}, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return e.Extract(name, mimeType, data)
}

// DefaultRegistry returns a registry with all supported extractors registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(NewImageExtractor())
	reg.Register(NewTextExtractor())
	reg.Register(NewMarkdownExtractor())
	reg.Register(NewHTMLExtractor())
	reg.Register(NewDocxExtractor())
	reg.Register(NewXlsxExtractor())
	reg.Register(NewPDFExtractor())
	return reg
}

// previewLimit bounds the human-readable excerpt length, excluding the
// ellipsis appended on truncation.
const previewLimit = 120

// Preview builds a short whitespace-collapsed excerpt of extracted text.
func Preview(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) <= previewLimit {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:previewLimit])) + "..."
}

// textDocument builds the normalized record for extracted text.
func textDocument(name, text string) prompt.NormalizedDocument {
	return prompt.NormalizedDocument{
		Name:      name,
		MediaType: prompt.MediaText,
		MIMEType:  "text/plain",
		Data:      prompt.EncodeText(text),
		Preview:   Preview(text),
	}
}
