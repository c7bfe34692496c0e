package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcePages(t *testing.T) {
	ctxs := []ContextSnippet{
		{PaperID: 1, Page: 3, Snippet: "a"},
		{PaperID: 1, Page: 1, Snippet: "b"},
		{PaperID: 1, Page: 3, Snippet: "c"},
		{PaperID: 1, Page: 0, Snippet: "d"},
	}

	// distinct, first-appearance order, zero pages dropped
	assert.Equal(t, []string{"Page 3", "Page 1"}, sourcePages(ctxs))
	assert.Empty(t, sourcePages(nil))
}

func TestBuildPrompt(t *testing.T) {
	sys, user := buildPrompt("What is evaluated?", []ContextSnippet{
		{PaperID: 1, Page: 2, Snippet: "We evaluate latency.\x00"},
		{PaperID: 1, Page: 5, Snippet: "And throughput."},
	})

	assert.Contains(t, sys, "ONLY the provided context")
	assert.Contains(t, sys, "[1] (page 2): We evaluate latency.")
	assert.Contains(t, sys, "[2] (page 5): And throughput.")
	assert.NotContains(t, sys, "\x00")
	assert.Contains(t, user, "What is evaluated?")
	assert.True(t, strings.HasSuffix(user, "Answer:"))
}

func TestAnswerCacheKey(t *testing.T) {
	k1 := answerCacheKey(7, "what is x")
	k2 := answerCacheKey(7, "what is x")
	k3 := answerCacheKey(7, "what is y")
	k4 := answerCacheKey(8, "what is x")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
	assert.True(t, strings.HasPrefix(k1, "academiq:query:answer:7:"))
}
