package prompt

import (
	"encoding/base64"
	"fmt"
)

// EncodeText encodes extracted text into the base64 transport payload.
func EncodeText(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBytes encodes a binary payload into the transport payload.
func EncodeBytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeText decodes a transport payload back to text. Invalid input yields an
// empty string and an error; callers treat the document as contributing no
// context rather than failing the whole request.
func DecodeText(data string) (string, error) {
	if data == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode document payload: %w", err)
	}
	return string(raw), nil
}

// DecodeBytes decodes a transport payload back to its raw bytes.
func DecodeBytes(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode document payload: %w", err)
	}
	return raw, nil
}
