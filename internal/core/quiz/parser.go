package quiz

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Parse recovers a list of questions from raw model output. The generator is
// instructed to emit a strict JSON array but nothing enforces that, so Parse
// degrades through increasingly lenient readings of the text and never fails:
// the result always has at least one element.
//
// Strategies, first success wins:
//  1. strip markdown fences, parse directly
//  2. first bracketed [...] substring
//  3. curly quotes replaced with ASCII quotes
//  4. slice from first '[' to last ']'
//  5. salvage individual {...} objects that carry a question
//  6. line-oriented "1. question / Answer: ..." transcript
//
// If everything fails the raw text is returned as the answer of a single
// placeholder record, so the caller can still show something readable.
func Parse(raw string, kind Kind) []Question {
	clean := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))

	if qs, ok := decodeArray(clean); ok {
		return qs
	}

	if m := arrayRe.FindString(clean); m != "" {
		if qs, ok := decodeArray(m); ok {
			return qs
		}
	}

	if qs, ok := decodeArray(normalizeQuotes(clean)); ok {
		return qs
	}

	if start, end := strings.Index(clean, "["), strings.LastIndex(clean, "]"); start != -1 && end > start {
		if qs, ok := decodeArray(clean[start : end+1]); ok {
			return qs
		}
	}

	if qs := salvageObjects(clean); len(qs) > 0 {
		return qs
	}

	if qs := extractTranscript(raw); len(qs) > 0 {
		return qs
	}

	return []Question{{
		Question: fmt.Sprintf("Generated %s content", kind),
		Answer:   strings.TrimSpace(raw),
		Options:  []Option{},
	}}
}

var (
	fenceRe = regexp.MustCompile("```(?:json)?")
	arrayRe = regexp.MustCompile(`(?s)\[.*?\]`)

	// "1." / "23)" / "Q." / "Q7:" open a question; "A." / "Ans)" / "Answer:" open an answer
	questionLineRe = regexp.MustCompile(`^(?:\d+[.)]|Q\d*[.):])\s*(.+)`)
	answerLineRe   = regexp.MustCompile(`(?i)^A(?:ns(?:wer)?)?[.):]\s*(.+)`)
)

// decodeArray parses s as a JSON array of question objects. Records without
// a question are dropped; the parse only counts as a success when at least
// one usable record remains.
func decodeArray(s string) ([]Question, bool) {
	var decoded []Question
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, false
	}
	kept := make([]Question, 0, len(decoded))
	for _, q := range decoded {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		if q.Options == nil {
			q.Options = []Option{}
		}
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

func normalizeQuotes(s string) string {
	r := strings.NewReplacer(
		"“", `"`, // “
		"”", `"`, // ”
		"‘", "'", // ‘
		"’", "'", // ’
	)
	return r.Replace(s)
}

// salvageObjects scans for flat {...} substrings (no nested braces inside)
// and keeps each one that parses as an object with a question. An explicit
// depth reset on '{' keeps nested literals from producing bogus matches.
func salvageObjects(s string) []Question {
	var questions []Question
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			start = i
		case '}':
			if start < 0 {
				continue
			}
			if q, ok := decodeObject(s[start : i+1]); ok {
				questions = append(questions, q)
			}
			start = -1
		}
	}
	return questions
}

func decodeObject(s string) (Question, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return Question{}, false
	}
	if _, ok := fields["question"]; !ok {
		return Question{}, false
	}
	var q Question
	if err := json.Unmarshal([]byte(s), &q); err != nil {
		return Question{}, false
	}
	if strings.TrimSpace(q.Question) == "" {
		return Question{}, false
	}
	if q.Options == nil {
		q.Options = []Option{}
	}
	return q, true
}

// extractTranscript treats the raw text as a numbered Q/A transcript: a
// numbered line opens a question, an answer-marker line or any following
// non-blank line accumulates its answer. A question is only emitted once it
// has accumulated at least one answer line.
func extractTranscript(raw string) []Question {
	var questions []Question
	var current string
	var answerLines []string

	flush := func() {
		if current != "" && len(answerLines) > 0 {
			questions = append(questions, Question{
				Question: current,
				Answer:   strings.Join(answerLines, " "),
				Options:  []Option{},
			})
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := questionLineRe.FindStringSubmatch(line); m != nil {
			flush()
			current = m[1]
			answerLines = nil
			continue
		}
		if current == "" {
			continue
		}
		if m := answerLineRe.FindStringSubmatch(line); m != nil {
			answerLines = append(answerLines, m[1])
			continue
		}
		answerLines = append(answerLines, line)
	}
	flush()

	return questions
}
