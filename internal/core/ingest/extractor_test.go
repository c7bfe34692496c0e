package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8Printable(t *testing.T) {
	assert.Equal(t, "plain text", sanitizeUTF8Printable("plain text"))
	assert.Equal(t, "a\nb\tc", sanitizeUTF8Printable("a\nb\tc"))
	assert.Equal(t, "ab", sanitizeUTF8Printable("\uFEFFa\x00b\x07"))
	assert.Equal(t, "trimmed", sanitizeUTF8Printable("  trimmed \n"))
	assert.Equal(t, "", sanitizeUTF8Printable("\x00\x01\x02"))
}
