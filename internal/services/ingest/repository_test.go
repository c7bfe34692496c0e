package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContentPreview(t *testing.T) {
	assert.Equal(t, "hello world", buildContentPreview("hello world", 512))

	// control characters and the BOM are stripped, common whitespace survives
	assert.Equal(t, "a\nb", buildContentPreview("a\x00\nb\x01", 512))
	assert.Equal(t, "ab", buildContentPreview("\uFEFFa\uFEFFb", 512))

	// rune-wise truncation
	long := strings.Repeat("é", 600)
	got := buildContentPreview(long, 512)
	assert.Equal(t, 512, len([]rune(got)))
}
