package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// LLMModelName is a Gemini model identifier, taken from configuration.
type LLMModelName string

// DefaultModel is used when no model name is configured.
const DefaultModel LLMModelName = "gemini-1.5-flash"

func (t LLMModelName) String() string {
	if t == "" {
		return string(DefaultModel)
	}
	return string(t)
}

// VisionModel answers an instruction about a single image with free text.
type VisionModel interface {
	DescribeImage(ctx context.Context, instruction string, img *PreparedImage) (string, error)
}

// TextModel answers a text prompt with free text.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type LLMUsage struct {
	InputTokenCount    int32
	OutputTokenCount   int32
	ThoughtsTokenCount int32
	TotalTokenCount    int32
}

// GeminiClient talks to the Gemini API. One client serves both the vision
// and the text model and is safe for concurrent use.
type GeminiClient struct {
	client      *genai.Client
	visionModel LLMModelName
	textModel   LLMModelName
	logger      *zap.SugaredLogger
}

func NewGeminiClient(ctx context.Context, apiKey string, visionModel, textModel LLMModelName, logger *zap.SugaredLogger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		visionModel: visionModel,
		textModel:   textModel,
		logger:      logger,
	}, nil
}

func (g *GeminiClient) DescribeImage(ctx context.Context, instruction string, img *PreparedImage) (string, error) {
	parts := []*genai.Part{
		{Text: instruction},
		{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}},
	}
	return g.generate(ctx, g.visionModel, parts)
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, g.textModel, []*genai.Part{{Text: prompt}})
}

func (g *GeminiClient) generate(ctx context.Context, model LLMModelName, parts []*genai.Part) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model.String(), []*genai.Content{{Role: "user", Parts: parts}}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s generate content: %w", model, err)
	}
	if usage := usageOf(result); usage != nil {
		g.logger.Debugw("Gemini usage",
			"model", model.String(),
			"input_tokens", usage.InputTokenCount,
			"output_tokens", usage.OutputTokenCount,
			"thoughts_tokens", usage.ThoughtsTokenCount,
			"total_tokens", usage.TotalTokenCount,
		)
	}
	return firstCandidateText(result)
}

func usageOf(result *genai.GenerateContentResponse) *LLMUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	return &LLMUsage{
		InputTokenCount:    result.UsageMetadata.PromptTokenCount,
		OutputTokenCount:   result.UsageMetadata.CandidatesTokenCount,
		ThoughtsTokenCount: result.UsageMetadata.ThoughtsTokenCount,
		TotalTokenCount:    result.UsageMetadata.TotalTokenCount,
	}
}

// firstCandidateText returns the text of the response or an error when the
// prompt or the answer was blocked or nothing came back.
func firstCandidateText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", fmt.Errorf("empty response from model")
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("content violation: prompt blocked (%s) %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	for _, rating := range result.Candidates[0].SafetyRatings {
		if rating.Blocked {
			return "", fmt.Errorf("content violation: answer blocked by %s", rating.Category)
		}
	}
	if result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned an empty candidate, finish reason %s", result.Candidates[0].FinishReason)
	}
	return result.Text(), nil
}
