package service

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/config"
)

// LLMService sends prompts to an OpenAI-compatible chat completions endpoint.
// The default endpoint is Gemini's OpenAI compatibility layer.
type LLMService struct {
	client *openai.Client
	model  string
	logger logrus.FieldLogger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, logger logrus.FieldLogger) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or LLM_API_KEY must be set")
	}

	clientCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		clientCfg.BaseURL = cfg.LLMBaseURL
	}

	model := cfg.LLMModel
	if model == "" {
		model = config.DefaultLLMModel
	}

	return &LLMService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger.WithField("component", "llm"),
	}, nil
}

// GenerateText sends prompt as a single user message and returns the text of
// the first choice. There is no streaming and no retry.
func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	content := resp.Choices[0].Message.Content
	s.logger.WithField("model", s.model).Debugf("raw model response: %s", content)

	return content, nil
}
