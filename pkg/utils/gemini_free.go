package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements TextGenerator using Google's Gemini models
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, maxTokens int, timeout time.Duration) (*GeminiGenerator, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(float32(req.Temperature))
	if g.maxTokens > 0 {
		m.SetMaxOutputTokens(int32(g.maxTokens))
	}
	if req.StructuredOutput {
		m.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		detail := ""
		if errors.Is(err, context.DeadlineExceeded) {
			detail = "The AI service took too long to respond. Please try again."
		}
		return GenerationResult{Model: g.model}, NewGenerationError(ErrUpstreamFailure, detail, err)
	}

	if len(resp.Candidates) == 0 {
		detail := "no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			detail = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return GenerationResult{Model: g.model}, NewGenerationError(ErrEmptyResponse, detail, nil)
	}

	candidate := resp.Candidates[0]
	result := GenerationResult{
		Model:     g.model,
		Truncated: candidate.FinishReason == genai.FinishReasonMaxTokens,
	}
	if candidate.Content == nil {
		return result, nil
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	result.Text = strings.TrimSpace(text.String())
	return result, nil
}

// Close closes the Gemini client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
