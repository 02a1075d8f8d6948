package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"topic-communities/pkg/registry"
)

// OpenAIConfig configures any OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

type OpenAI struct {
	cfg    OpenAIConfig
	client *openai.Client
	schema json.RawMessage
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	act, ok := registry.Default().Find(TaskType)
	if !ok {
		return nil, fmt.Errorf("activity %q not found in registry", TaskType)
	}
	schema, err := json.Marshal(act.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("encode output schema: %w", err)
	}

	return &OpenAI{
		cfg:    cfg,
		client: openai.NewClientWithConfig(config),
		schema: schema,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: float32(o.cfg.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "community_suggestions",
				Schema: o.schema,
				Strict: false,
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
