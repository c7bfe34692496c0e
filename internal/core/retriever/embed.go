package retriever

import (
	"context"
	"errors"

	"academiq/config"
	"academiq/internal/core/ingest"
	"academiq/pkg/logger"
)

// EmbedQuery embeds a single query string and returns its vector.
func EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if query == "" {
		return nil, errors.New("query is empty")
	}
	vecs, err := ingest.EmbedOpenAI(ctx, []string{query})
	if err != nil {
		logger.Error(err, "%v: embed query failed", config.ModuleRetriever)
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vecs[0], nil
}
