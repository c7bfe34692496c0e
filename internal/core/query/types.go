package query

type Request struct {
	PaperID  int64  `json:"paper_id"`
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type ContextSnippet struct {
	PaperID int64  `json:"paper_id"`
	Page    int32  `json:"page"`
	Snippet string `json:"snippet"`
}

type Response struct {
	Answer   string           `json:"answer"`
	Sources  []string         `json:"sources"`
	Contexts []ContextSnippet `json:"contexts"`
}
