package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"Hello world",
		"multi\nline\ttext with  spaces",
		"unicode: 東京 — ✓ émojis 🙂",
	}

	for _, text := range cases {
		decoded, err := DecodeText(EncodeText(text))
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestDecodeInvalidPayload(t *testing.T) {
	decoded, err := DecodeText("not!!valid!!base64")
	assert.Error(t, err)
	assert.Empty(t, decoded)

	raw, err := DecodeBytes("%%%")
	assert.Error(t, err)
	assert.Nil(t, raw)
}

func TestDecodeEmptyPayload(t *testing.T) {
	decoded, err := DecodeText("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
