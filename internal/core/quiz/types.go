package quiz

import "fmt"

// Kind is the requested question format.
type Kind string

const (
	KindMCQ         Kind = "MCQ"
	KindShortAnswer Kind = "Short Answer"
	KindLongAnswer  Kind = "Long Answer"
)

// ParseKind accepts both display names and snake_case API values.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "MCQ", "mcq":
		return KindMCQ, nil
	case "Short Answer", "short_answer":
		return KindShortAnswer, nil
	case "Long Answer", "long_answer":
		return KindLongAnswer, nil
	}
	return "", fmt.Errorf("unknown question kind %q", s)
}

// Option is one lettered choice of an MCQ.
type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is one generated quiz item. For MCQ the answer is the correct
// option's letter; otherwise free text. Options is empty for non-MCQ kinds.
type Question struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []Option `json:"options"`
}
