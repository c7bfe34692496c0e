package quiz

import (
	"fmt"
	"strings"
)

const mcqExample = `[
  {
    "question": "Question text here?",
    "options": [
      {"letter": "A", "text": "Option A text"},
      {"letter": "B", "text": "Option B text"},
      {"letter": "C", "text": "Option C text"},
      {"letter": "D", "text": "Option D text"}
    ],
    "answer": "A"
  }
]`

const shortAnswerExample = `[
  {
    "question": "Question text here?",
    "answer": "Short answer in 2-3 sentences."
  }
]`

const longAnswerExample = `[
  {
    "question": "Detailed question text here?",
    "answer": "Comprehensive paragraph answer here."
  }
]`

// BuildGenerationPrompt renders the instruction for the generator. The strict
// JSON-array framing is a request, not a guarantee; Parse handles the rest.
func BuildGenerationPrompt(kind Kind, count int, topic string) string {
	topicClause := ""
	if strings.TrimSpace(topic) != "" {
		topicClause = fmt.Sprintf(" Focus on the topic: %s.", strings.TrimSpace(topic))
	}

	var what, extra, example string
	switch kind {
	case KindMCQ:
		what = "multiple choice questions"
		extra = ""
		example = mcqExample
	case KindShortAnswer:
		what = "short answer questions"
		extra = "\nEach answer should be 2-3 sentences maximum."
		example = shortAnswerExample
	default:
		what = "long answer questions"
		extra = "\nEach answer should be one detailed paragraph."
		example = longAnswerExample
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the academic paper content, generate exactly %d %s.%s%s\n\n", count, what, topicClause, extra)
	b.WriteString("IMPORTANT: Return ONLY a valid JSON array. No explanation, no markdown, no extra text.\n")
	b.WriteString("Start your response with [ and end with ]\n\n")
	b.WriteString(example)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Generate %d such objects. Start with [ and end with ]. Nothing else.\n", count)
	return b.String()
}
