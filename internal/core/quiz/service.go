package quiz

import (
	"academiq/config"
	"academiq/internal/core/llm"
	"academiq/internal/core/retriever"
	"academiq/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

type Request struct {
	PaperID int64  `json:"paper_id"`
	Kind    string `json:"kind"`
	Count   int    `json:"count"`
	Topic   string `json:"topic"`
}

type Result struct {
	Kind      Kind       `json:"kind"`
	Questions []Question `json:"questions"`
}

// Passages beyond the question prompt itself help the generator stay on the
// paper; pull a few more than the QA flow does.
const generationTopK = 8

// Generate produces quiz questions grounded in a paper's retrieved passages.
// The LLM call can fail; a degenerate LLM *response* cannot, because Parse
// always recovers something presentable.
func Generate(ctx context.Context, paperID int64, kind Kind, count int, topic string) (Result, error) {
	if count <= 0 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	searchQuery := strings.TrimSpace(topic)
	if searchQuery == "" {
		searchQuery = "key contributions, methods, results and conclusions of the paper"
	}

	embedCtx, cancelEmbed := context.WithTimeout(ctx, 3*time.Second)
	defer cancelEmbed()
	vec, err := retriever.EmbedQuery(embedCtx, searchQuery)
	if err != nil {
		logger.Error(err, "%v: embed search query failed", config.ModuleQuiz)
		return Result{}, err
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, 1*time.Second)
	defer cancelSearch()
	hits, err := retriever.SearchMilvus(searchCtx, vec, generationTopK, retriever.Filters{PaperIDs: []int64{paperID}})
	if err != nil {
		logger.Error(err, "%v: search milvus failed", config.ModuleQuiz)
		return Result{}, err
	}
	if len(hits) == 0 {
		return Result{}, fmt.Errorf("no indexed content for paper %d", paperID)
	}

	sysMsg := buildContextMessage(hits)
	userMsg := BuildGenerationPrompt(kind, count, topic)

	llmCtx, cancelLLM := context.WithTimeout(ctx, 30*time.Second)
	defer cancelLLM()
	raw, err := llm.Chat(llmCtx, sysMsg, userMsg)
	if err != nil {
		logger.Error(err, "%v: call llm failed", config.ModuleQuiz)
		return Result{}, err
	}

	questions := Parse(raw, kind)
	logger.WithFields(map[string]interface{}{
		"paper_id":  paperID,
		"kind":      kind,
		"requested": count,
		"parsed":    len(questions),
	}).Info("quiz: generation done")

	return Result{Kind: kind, Questions: questions}, nil
}

func buildContextMessage(hits []retriever.Hit) string {
	var b strings.Builder
	b.WriteString("You are a helpful academic assistant generating quiz questions. ")
	b.WriteString("Base every question strictly on the paper excerpts below.\n\n")
	b.WriteString("Context:\n")
	for i, h := range hits {
		b.WriteString(fmt.Sprintf("[%d] (page %d): %s\n\n", i+1, h.PageIndex, strings.TrimSpace(h.Content)))
	}
	return b.String()
}
