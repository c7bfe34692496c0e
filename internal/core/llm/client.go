package llm

import (
	"academiq/config"
	"academiq/pkg/logger"
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Chat sends a system+user prompt pair to the configured chat-completions
// endpoint (Groq speaks the OpenAI wire format) and returns the raw text of
// the first choice. No schema is enforced on the output.
func Chat(ctx context.Context, promptSystem, promptUser string) (string, error) {
	cfg := config.Cfg.Groq
	if cfg.Key == "" {
		return "", errors.New("missing groq key")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.Key),
		option.WithBaseURL(cfg.BaseURL),
	)

	req := chatRequest{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: promptSystem},
			{Role: "user", Content: promptUser},
		},
	}
	var out chatResponse
	if err := client.Post(ctx, "/chat/completions", req, &out); err != nil {
		logger.Error(err, "%v: chat completion failed", config.ModuleGroq)
		return "", err
	}
	if len(out.Choices) == 0 {
		err := errors.New("no choices returned")
		logger.Error(err, "%v: chat completion empty", config.ModuleGroq)
		return "", err
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
