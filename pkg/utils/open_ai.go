package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAIGenerator creates a chat-completion backed generator. baseURL may be
// empty for api.openai.com or point at any OpenAI compatible endpoint.
func NewOpenAIGenerator(apiKey, baseURL, model string, maxTokens int, timeout time.Duration) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   g.maxTokens,
	}
	if req.StructuredOutput {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return GenerationResult{}, NewGenerationError(ErrUpstreamFailure, openAIErrorMessage(err), err)
	}
	if len(resp.Choices) == 0 {
		return GenerationResult{Model: resp.Model}, NewGenerationError(ErrEmptyResponse, "no choices in completion", nil)
	}

	choice := resp.Choices[0]
	return GenerationResult{
		Text:      strings.TrimSpace(choice.Message.Content),
		Truncated: choice.FinishReason == openai.FinishReasonLength,
		Model:     resp.Model,
	}, nil
}

func openAIErrorMessage(err error) string {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return "The AI service took too long to respond. Please try again."
		}
		return ""
	}
	if code, ok := apiErr.Code.(string); ok {
		switch code {
		case "invalid_api_key":
			return "The OpenAI API key on the server is invalid or missing."
		case "insufficient_quota":
			return "OpenAI API quota exceeded on the server."
		}
	}
	return fmt.Sprintf("OpenAI API Error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
}
