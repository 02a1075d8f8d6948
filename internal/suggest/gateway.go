package suggest

import (
	"context"
	"strings"
	"time"

	apphttp "topic-communities/internal/common/http"
)

// GatewayConfig configures a GenAI gateway exposing POST /api/ai/generate.
type GatewayConfig struct {
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type Gateway struct {
	cfg    GatewayConfig
	client *apphttp.Client
}

func NewGateway(cfg GatewayConfig) *Gateway {
	client := apphttp.NewClient(cfg.Timeout)
	if cfg.APIKey != "" {
		client.WithHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Gateway{cfg: cfg, client: client}
}

func (g *Gateway) Name() string { return "http" }

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	var resp generateResponse
	err := g.client.PostJSON(ctx, g.cfg.BaseURL+"/api/ai/generate", generateRequest{
		Prompt:      prompt,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
