package extract

import (
	"net/http"
	"strings"

	"promptforge/prompt"
)

// ImageExtractor handles image files. The bytes pass through untouched as a
// binary attachment; there is no text to preview.
type ImageExtractor struct{}

// NewImageExtractor creates a new image passthrough extractor.
func NewImageExtractor() *ImageExtractor {
	return &ImageExtractor{}
}

// Extract copies the image through as an opaque binary payload.
func (e *ImageExtractor) Extract(name, mimeType string, data []byte) (prompt.NormalizedDocument, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	return prompt.NormalizedDocument{
		Name:      name,
		MediaType: prompt.MediaBinary,
		MIMEType:  mimeType,
		Data:      prompt.EncodeBytes(data),
	}, nil
}

// Kind returns the content family this extractor handles.
func (e *ImageExtractor) Kind() Kind {
	return KindImage
}
