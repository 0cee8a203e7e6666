package extract

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"promptforge/prompt"
)

// HTMLExtractor handles HTML files, converting the markup to markdown so the
// document structure survives extraction.
type HTMLExtractor struct{}

// NewHTMLExtractor creates a new HTML extractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract strips scripts and styles, then converts the remaining markup to
// markdown text.
func (e *HTMLExtractor) Extract(name, _ string, data []byte) (prompt.NormalizedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("parse html: %w", err))
	}
	doc.Find("script, style, noscript").Remove()

	body, err := doc.Find("body").Html()
	if err != nil || body == "" {
		body = string(data)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(body)
	if err != nil {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("convert html: %w", err))
	}

	// Collapse excessive blank lines left by the conversion.
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	text := strings.Join(lines, "\n")

	if text == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("document contains no text"))
	}
	return textDocument(name, text), nil
}

// Kind returns the content family this extractor handles.
func (e *HTMLExtractor) Kind() Kind {
	return KindHTML
}
