package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "academiq:query:answer:42",
		GenerateCacheKey("query", "answer", "42"))

	assert.Equal(t, "academiq:query:answer:42:abc_def",
		GenerateCacheKey("query", "answer", "42", "abc", "def"))
}
