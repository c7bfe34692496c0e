package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChunks_PageTagging(t *testing.T) {
	pages := []string{
		"First page text.",
		"",
		"Third page text.",
	}

	chunks, err := BuildChunks(pages, 1000, 200)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, int32(0), chunks[0].ChunkIndex)
	assert.Equal(t, int32(1), chunks[0].PageIndex)
	assert.Equal(t, "First page text.", chunks[0].Content)
	// empty page is skipped, indices stay contiguous
	assert.Equal(t, int32(1), chunks[1].ChunkIndex)
	assert.Equal(t, int32(3), chunks[1].PageIndex)
}

func TestBuildChunks_SplitsLongPage(t *testing.T) {
	words := make([]string, 0, 400)
	for i := 0; i < 400; i++ {
		words = append(words, "lorem")
	}
	page := strings.Join(words, " ")

	chunks, err := BuildChunks([]string{page}, 200, 40)
	require.NoError(t, err)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.Equal(t, int32(i), c.ChunkIndex)
		assert.Equal(t, int32(1), c.PageIndex)
		assert.NotEmpty(t, c.Content)
	}
}

func TestBuildChunks_Empty(t *testing.T) {
	chunks, err := BuildChunks(nil, 1000, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = BuildChunks([]string{"", "   "}, 1000, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
