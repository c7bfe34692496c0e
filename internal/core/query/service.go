package query

import (
	"academiq/config"
	"academiq/internal/cache"
	"academiq/internal/core/llm"
	"academiq/internal/core/retriever"
	"academiq/internal/database"
	"academiq/internal/database/model"
	"academiq/pkg/logger"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const noEvidenceAnswer = "The paper does not contain enough evidence to answer this question."

// Run executes the ask flow: cache check → embed → search → prompt → LLM → persist.
func Run(ctx context.Context, req Request) (Response, error) {
	if req.TopK <= 0 || req.TopK > 64 {
		req.TopK = config.Cfg.Retrieval.TopK
	}
	question := strings.TrimSpace(req.Question)

	if resp, ok := cachedAnswer(ctx, req.PaperID, question); ok {
		return resp, nil
	}

	// Embed
	embedCtx, cancelEmbed := context.WithTimeout(ctx, 3*time.Second)
	defer cancelEmbed()
	vec, err := retriever.EmbedQuery(embedCtx, question)
	if err != nil {
		logger.Error(err, "%v: embed question failed", config.ModuleQuery)
		return Response{}, err
	}
	// Search, scoped to the selected paper
	searchCtx, cancelSearch := context.WithTimeout(ctx, 1*time.Second)
	defer cancelSearch()
	hits, err := retriever.SearchMilvus(searchCtx, vec, req.TopK, retriever.Filters{PaperIDs: []int64{req.PaperID}})
	if err != nil {
		logger.Error(err, "%v: search milvus failed", config.ModuleQuery)
		return Response{}, err
	}

	ctxs := make([]ContextSnippet, 0, len(hits))
	for _, h := range hits {
		ctxs = append(ctxs, ContextSnippet{
			PaperID: h.PaperID,
			Page:    h.PageIndex,
			Snippet: h.Content,
		})
	}
	// Guard hallucination
	if len(ctxs) == 0 {
		resp := Response{Answer: noEvidenceAnswer, Sources: []string{}, Contexts: []ContextSnippet{}}
		if err := persistMessages(req.PaperID, question, resp.Answer, nil); err != nil {
			logger.Error(err, "%v: persist messages failed", config.ModuleQuery)
		}
		return resp, nil
	}

	sysMsg, userMsg := buildPrompt(question, ctxs)
	llmCtx, cancelLLM := context.WithTimeout(ctx, 20*time.Second)
	defer cancelLLM()
	answer, err := llm.Chat(llmCtx, sysMsg, userMsg)
	if err != nil {
		logger.Error(err, "%v: call llm failed", config.ModuleQuery)
		return Response{}, err
	}

	resp := Response{Answer: answer, Sources: sourcePages(ctxs), Contexts: ctxs}

	if err := persistMessages(req.PaperID, question, answer, ctxs); err != nil {
		logger.Error(err, "%v: persist messages failed", config.ModuleQuery)
	}
	storeAnswer(ctx, req.PaperID, question, resp)
	return resp, nil
}

func buildPrompt(question string, ctxs []ContextSnippet) (systemMsg, userMsg string) {
	var b strings.Builder
	b.WriteString("You are a helpful academic assistant. Answer using ONLY the provided context. ")
	b.WriteString("Be precise and cite relevant details from the paper. ")
	b.WriteString(fmt.Sprintf("If the context does not contain the answer, reply exactly: %q.\n\n", noEvidenceAnswer))
	b.WriteString("Context:\n")
	for i, c := range ctxs {
		b.WriteString(fmt.Sprintf("[%d] (page %d): %s\n\n", i+1, c.Page, sanitize(c.Snippet)))
	}
	systemMsg = b.String()
	userMsg = fmt.Sprintf("Question:\n%s\n\nAnswer:", question)
	return
}

// sourcePages returns the distinct "Page N" labels of the context snippets,
// in order of first appearance.
func sourcePages(ctxs []ContextSnippet) []string {
	seen := make(map[int32]bool, len(ctxs))
	pages := make([]string, 0, len(ctxs))
	for _, c := range ctxs {
		if c.Page <= 0 || seen[c.Page] {
			continue
		}
		seen[c.Page] = true
		pages = append(pages, fmt.Sprintf("Page %d", c.Page))
	}
	return pages
}

func sanitize(s string) string {
	out := strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(out)
}

func persistMessages(paperID int64, question string, answer string, ctxs []ContextSnippet) error {
	db, err := database.GetDB()
	if err != nil {
		logger.Error(err, "%v: get db failed", config.ModuleQuery)
		return err
	}
	now := time.Now()
	msgUser := model.Message{
		PaperID:   paperID,
		Role:      "user",
		Content:   question,
		CreatedAt: now,
	}
	if err := db.Create(&msgUser).Error; err != nil {
		return err
	}
	msgAssistant := model.Message{
		PaperID:   paperID,
		Role:      "assistant",
		Content:   answer,
		CreatedAt: now,
	}
	if err := db.Create(&msgAssistant).Error; err != nil {
		return err
	}
	for _, cs := range ctxs {
		page := cs.Page
		msgCtx := model.Message{
			PaperID:   paperID,
			Role:      "context",
			Content:   cs.Snippet,
			PageIndex: &page,
			CreatedAt: now,
		}
		if err := db.Create(&msgCtx).Error; err != nil {
			return err
		}
	}
	return nil
}

func answerCacheKey(paperID int64, question string) string {
	h := sha256.Sum256([]byte(question))
	return cache.GenerateCacheKey("query", "answer", strconv.FormatInt(paperID, 10), hex.EncodeToString(h[:16]))
}

func cachedAnswer(ctx context.Context, paperID int64, question string) (Response, bool) {
	cli, err := cache.GetClient()
	if err != nil {
		return Response{}, false
	}
	raw, err := cli.Get(ctx, answerCacheKey(paperID, question)).Result()
	if err != nil {
		return Response{}, false
	}
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Response{}, false
	}
	logger.Debug("%v: answer cache hit", config.ModuleQuery)
	return resp, true
}

func storeAnswer(ctx context.Context, paperID int64, question string, resp Response) {
	cli, err := cache.GetClient()
	if err != nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := cli.Set(ctx, answerCacheKey(paperID, question), string(raw), cache.AnswerTTL()).Err(); err != nil {
		logger.Warn("%v: answer cache store failed: %v", config.ModuleCache, err)
	}
}
