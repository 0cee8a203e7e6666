package prompt

import "time"

// MediaType is the coarse classification of a normalized document.
type MediaType string

const (
	// MediaBinary marks content forwarded without text extraction (images).
	MediaBinary MediaType = "binary"
	// MediaText marks content produced by a text extractor.
	MediaText MediaType = "text"
)

// NormalizedDocument is the canonical output of ingestion: either an opaque
// binary payload or extracted text, both carried base64-encoded for uniform
// transport. Immutable once created.
type NormalizedDocument struct {
	Name      string    `json:"name"`
	MediaType MediaType `json:"media_type"`
	// MIMEType is the original media type, kept for binary passthrough so the
	// attachment can be forwarded with the right content type.
	MIMEType string `json:"mime_type"`
	// Data is the base64-encoded payload. For MediaText it decodes back to the
	// exact extractor output.
	Data string `json:"data"`
	// Preview is a short whitespace-collapsed excerpt of the extracted text.
	// Empty for binary passthrough.
	Preview string `json:"preview,omitempty"`
}

// IsText reports whether the document carries extracted text.
func (d NormalizedDocument) IsText() bool {
	return d.MediaType == MediaText
}

// Attachment is one binary part of a generation request.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// GenerationRequest is the assembled input for one synthesis call. Built fresh
// per call and never mutated after assembly.
type GenerationRequest struct {
	IdeaText          string
	SystemInstruction string
	Attachments       []Attachment
}

// HistoryEntry records one successfully completed generation, newest-first in
// the history collection.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Idea      string    `json:"idea"`
	Result    string    `json:"result"`
	Persona   string    `json:"persona"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}
