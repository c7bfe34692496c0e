package history

import (
	"testing"
	"time"

	"academiq/internal/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairExchanges(t *testing.T) {
	now := time.Now()
	msgs := []model.Message{
		{Role: "user", Content: "Q1", CreatedAt: now},
		{Role: "assistant", Content: "A1", CreatedAt: now},
		{Role: "user", Content: "Q2", CreatedAt: now},
		{Role: "assistant", Content: "A2", CreatedAt: now},
	}

	out := pairExchanges(msgs)

	require.Len(t, out, 2)
	assert.Equal(t, "Q1", out[0].Question)
	assert.Equal(t, "A1", out[0].Answer)
	assert.Equal(t, "Q2", out[1].Question)
	assert.Equal(t, "A2", out[1].Answer)
}

func TestPairExchanges_DanglingQuestion(t *testing.T) {
	msgs := []model.Message{
		{Role: "user", Content: "Q1"},
		{Role: "assistant", Content: "A1"},
		{Role: "user", Content: "Q2"},
	}

	out := pairExchanges(msgs)

	require.Len(t, out, 2)
	assert.Equal(t, "Q2", out[1].Question)
	assert.Equal(t, "", out[1].Answer)
}

func TestPairExchanges_OrphanAnswer(t *testing.T) {
	msgs := []model.Message{
		{Role: "assistant", Content: "A0"},
		{Role: "user", Content: "Q1"},
		{Role: "assistant", Content: "A1"},
	}

	out := pairExchanges(msgs)

	require.Len(t, out, 1)
	assert.Equal(t, "Q1", out[0].Question)
	assert.Equal(t, "A1", out[0].Answer)
}

func TestPairExchanges_Empty(t *testing.T) {
	assert.Empty(t, pairExchanges(nil))
}
