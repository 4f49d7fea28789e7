package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIService implements Generator using an OpenAI-compatible API.
type OpenAIService struct {
	client llms.Model
	// initErr is reported on every request instead of failing startup.
	initErr error
}

// NewOpenAIService creates a new OpenAI-compatible generator.
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return &OpenAIService{initErr: fmt.Errorf("failed to create LLM client: %w", err)}
	}

	return &OpenAIService{client: client}
}

// Generate implements the Generator interface.
func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.initErr != nil {
		return "", s.initErr
	}

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := s.client.GenerateContent(ctx, msgs)
	if errors.Is(err, openai.ErrEmptyResponse) {
		return "", &MissingFieldError{Field: "choices"}
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", &MissingFieldError{Field: "choices"}
	}

	if resp.Choices[0].Content == "" {
		return "", &MissingFieldError{Field: "choices[0].message.content", FinishReason: resp.Choices[0].StopReason}
	}

	return resp.Choices[0].Content, nil
}
