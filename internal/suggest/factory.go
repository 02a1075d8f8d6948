package suggest

import (
	"context"
	"fmt"

	"topic-communities/internal/common/config"
	"topic-communities/internal/common/logger"
)

// FromConfig builds the generator selected by apis.genai, wrapped in a
// circuit breaker when one is enabled. opts are applied to the client after
// the configured timeout and logger.
func FromConfig(ctx context.Context, cfg config.GenAIConfig, log logger.Logger, opts ...Option) (Generator, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]Option{
		WithTimeout(config.GetDuration(cfg.Timeout)),
		WithLogger(log),
	}, opts...)
	var gen Generator = NewClient(backend, clientOpts...)
	if cfg.Breaker.Enabled {
		gen = NewBreaker(gen, BreakerConfig{
			Name:             "suggest-" + backend.Name(),
			FailureThreshold: uint32(cfg.Breaker.FailureThreshold),
			OpenTimeout:      config.GetDuration(cfg.Breaker.OpenTimeout),
		}, log)
	}

	log.Info("Suggestion generator configured", map[string]interface{}{
		"provider": cfg.Provider,
		"model":    cfg.Model,
		"breaker":  cfg.Breaker.Enabled,
	})
	return gen, nil
}

func newBackend(ctx context.Context, cfg config.GenAIConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	case config.ProviderHTTP:
		return NewGateway(GatewayConfig{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported genai provider %q", cfg.Provider)
	}
}
