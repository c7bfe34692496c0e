package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGenerationPrompt(t *testing.T) {
	p := BuildGenerationPrompt(KindMCQ, 5, "")

	assert.Contains(t, p, "generate exactly 5 multiple choice questions")
	assert.Contains(t, p, "Return ONLY a valid JSON array")
	assert.Contains(t, p, `"letter": "A"`)
	assert.NotContains(t, p, "Focus on the topic")
}

func TestBuildGenerationPrompt_Topic(t *testing.T) {
	p := BuildGenerationPrompt(KindShortAnswer, 3, "  transformer attention  ")

	assert.Contains(t, p, "generate exactly 3 short answer questions")
	assert.Contains(t, p, "Focus on the topic: transformer attention.")
	assert.Contains(t, p, "2-3 sentences")
}

func TestBuildGenerationPrompt_Kinds(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		want string
	}{
		{KindMCQ, "multiple choice questions"},
		{KindShortAnswer, "short answer questions"},
		{KindLongAnswer, "long answer questions"},
	} {
		p := BuildGenerationPrompt(tc.kind, 1, "")
		assert.Contains(t, p, tc.want, fmt.Sprintf("kind %s", tc.kind))
	}
}
