package retriever

// Filters represents optional constraints applied during search.
type Filters struct {
	PaperIDs []int64
}

// Hit represents a single search result from Milvus with associated metadata.
type Hit struct {
	ChunkID    int64   `json:"chunk_id"`
	Score      float32 `json:"score"`
	PaperID    int64   `json:"paper_id"`
	PageIndex  int32   `json:"page_index"`
	ChunkIndex int32   `json:"chunk_index"`
	Content    string  `json:"content"`
}
