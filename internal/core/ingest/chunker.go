package ingest

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// Chunk is one bounded text window of a paper, tagged with its 1-based page.
type Chunk struct {
	ChunkIndex int32
	PageIndex  int32
	Content    string
}

// BuildChunks splits page texts into overlapping windows using a recursive
// character splitter (splits on paragraph, then line, then word boundaries
// before falling back to hard cuts). chunkSize and overlap are in characters.
func BuildChunks(pages []string, chunkSize int, overlap int) ([]Chunk, error) {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(overlap),
	)

	chunks := make([]Chunk, 0, 128)
	chunkIdx := int32(0)
	for pageIdx, page := range pages {
		text := strings.TrimSpace(page)
		if text == "" {
			continue
		}
		parts, err := splitter.SplitText(text)
		if err != nil {
			return nil, err
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				ChunkIndex: chunkIdx,
				PageIndex:  int32(pageIdx + 1),
				Content:    part,
			})
			chunkIdx++
		}
	}
	return chunks, nil
}
