package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WellFormedArray(t *testing.T) {
	raw := `[
		{"question": "What is the main contribution?", "answer": "A new retrieval method."},
		{"question": "Which dataset is used?", "answer": "SQuAD."}
	]`

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 2)
	assert.Equal(t, "What is the main contribution?", qs[0].Question)
	assert.Equal(t, "A new retrieval method.", qs[0].Answer)
	assert.Equal(t, "Which dataset is used?", qs[1].Question)
	// options are always non-nil so the JSON response carries []
	assert.NotNil(t, qs[0].Options)
	assert.Empty(t, qs[0].Options)
}

func TestParse_MCQOptions(t *testing.T) {
	raw := `[
		{
			"question": "Which method performs best?",
			"options": [
				{"letter": "A", "text": "Baseline"},
				{"letter": "B", "text": "Proposed"}
			],
			"answer": "B"
		}
	]`

	qs := Parse(raw, KindMCQ)

	require.Len(t, qs, 1)
	require.Len(t, qs[0].Options, 2)
	assert.Equal(t, "A", qs[0].Options[0].Letter)
	assert.Equal(t, "Proposed", qs[0].Options[1].Text)
	assert.Equal(t, "B", qs[0].Answer)
}

func TestParse_MarkdownFences(t *testing.T) {
	raw := "```json\n[{\"question\": \"Q?\", \"answer\": \"A.\"}]\n```"

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, "Q?", qs[0].Question)
}

func TestParse_NoisyPrefix(t *testing.T) {
	raw := "Sure! Here are your questions:\n[{\"question\": \"Q1?\", \"answer\": \"A1\"}]"

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, "Q1?", qs[0].Question)
	assert.Equal(t, "A1", qs[0].Answer)
}

func TestParse_NoisyPrefixWithNestedOptions(t *testing.T) {
	// inner option arrays defeat the lazy bracket match; the first-'['-to-
	// last-']' slice still recovers the array
	raw := `Here you go:
[
	{"question": "Pick one", "options": [{"letter": "A", "text": "x"}, {"letter": "B", "text": "y"}], "answer": "A"}
]
Hope that helps!`

	qs := Parse(raw, KindMCQ)

	require.Len(t, qs, 1)
	assert.Equal(t, "Pick one", qs[0].Question)
	require.Len(t, qs[0].Options, 2)
}

func TestParse_CurlyQuotes(t *testing.T) {
	raw := `[{“question”: “What is measured?”, “answer”: “Latency.”}]`

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, "What is measured?", qs[0].Question)
	assert.Equal(t, "Latency.", qs[0].Answer)
}

func TestParse_SalvageObjectsFromBrokenArray(t *testing.T) {
	// truncated array, so none of the whole-array strategies can decode it
	raw := `[{"question": "First?", "answer": "one"}, {"question": "Second?", "answer": "two"},`

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 2)
	assert.Equal(t, "First?", qs[0].Question)
	assert.Equal(t, "Second?", qs[1].Question)
}

func TestParse_SalvageSkipsObjectsWithoutQuestion(t *testing.T) {
	raw := `[{"answer": "orphan"}, {"question": "Kept?", "answer": "yes"},`

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, "Kept?", qs[0].Question)
}

func TestParse_Transcript(t *testing.T) {
	raw := "1. What is X?\nAnswer: It is Y.\n2. What is Z?\nA: It is W."

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 2)
	assert.Equal(t, "What is X?", qs[0].Question)
	assert.Equal(t, "It is Y.", qs[0].Answer)
	assert.Equal(t, "What is Z?", qs[1].Question)
	assert.Equal(t, "It is W.", qs[1].Answer)
	assert.Empty(t, qs[0].Options)
}

func TestParse_TranscriptMultilineAnswer(t *testing.T) {
	raw := "Q1. Explain the method.\nAnswer: It embeds each chunk.\nThen it searches the index.\n\n2) Why does it work?\nA: Dense vectors capture meaning."

	qs := Parse(raw, KindLongAnswer)

	require.Len(t, qs, 2)
	assert.Equal(t, "Explain the method.", qs[0].Question)
	assert.Equal(t, "It embeds each chunk. Then it searches the index.", qs[0].Answer)
	assert.Equal(t, "Why does it work?", qs[1].Question)
}

func TestParse_TranscriptDropsUnansweredQuestions(t *testing.T) {
	raw := "1. Skipped question?\n2. Answered question?\nAnswer: yes"

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, "Answered question?", qs[0].Question)
}

func TestParse_FallbackGarbage(t *testing.T) {
	raw := "  the model refused to answer  "

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Contains(t, qs[0].Question, "Short Answer")
	assert.Equal(t, "the model refused to answer", qs[0].Answer)
	assert.Empty(t, qs[0].Options)
}

func TestParse_FallbackEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		qs := Parse(raw, KindMCQ)
		require.Len(t, qs, 1, "input %q", raw)
		assert.Equal(t, "Generated MCQ content", qs[0].Question)
		assert.Equal(t, "", qs[0].Answer)
	}
}

func TestParse_ArrayOfEmptyQuestionsFallsThrough(t *testing.T) {
	// decodes as an array but no record carries a question, so the parse
	// does not count and the raw text ends up as the fallback answer
	raw := `[{"answer": "a"}, {"answer": "b"}]`

	qs := Parse(raw, KindShortAnswer)

	require.Len(t, qs, 1)
	assert.Equal(t, raw, qs[0].Answer)
}

func TestParse_NeverEmpty(t *testing.T) {
	inputs := []string{
		"",
		"null",
		"[]",
		"{}",
		"[{}]",
		"{\"question\": \"not an array\"}",
		"<html>502 Bad Gateway</html>",
		strings.Repeat("}{", 50),
	}
	for _, raw := range inputs {
		qs := Parse(raw, KindMCQ)
		assert.NotEmpty(t, qs, "input %q", raw)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"MCQ":          KindMCQ,
		"mcq":          KindMCQ,
		"Short Answer": KindShortAnswer,
		"short_answer": KindShortAnswer,
		"Long Answer":  KindLongAnswer,
		"long_answer":  KindLongAnswer,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("true_false")
	assert.Error(t, err)
}
