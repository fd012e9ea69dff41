package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient serves both models through any OpenAI compatible chat
// completions endpoint.
type OpenAIClient struct {
	client      *openai.Client
	visionModel string
	textModel   string
	logger      *zap.SugaredLogger
}

func NewOpenAIClient(apiKey, baseURL, visionModel, textModel string, logger *zap.SugaredLogger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		visionModel: visionModel,
		textModel:   textModel,
		logger:      logger,
	}, nil
}

func (o *OpenAIClient) DescribeImage(ctx context.Context, instruction string, img *PreparedImage) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
	message := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: instruction,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}
	return o.complete(ctx, o.visionModel, message)
}

func (o *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, o.textModel, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
}

func (o *OpenAIClient) complete(ctx context.Context, model string, message openai.ChatCompletionMessage) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: []openai.ChatCompletionMessage{message},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s chat completion: %w", model, err)
	}
	o.logger.Debugw("OpenAI usage",
		"model", model,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"total_tokens", resp.Usage.TotalTokens,
	)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai %s returned no choices", model)
	}
	return resp.Choices[0].Message.Content, nil
}
