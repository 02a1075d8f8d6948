// Package suggest asks a generative model for communities similar to a topic.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/metrics"
	"topic-communities/internal/common/validation"
	"topic-communities/pkg/registry"
)

// TaskType is the registry entry describing the generator contract.
const TaskType = "suggest-communities"

var (
	ErrInvalidInput    = errors.New("invalid suggestion input")
	ErrInvalidResponse = errors.New("invalid suggestion response")
	ErrCircuitOpen     = errors.New("suggestion backend unavailable")
)

type Input struct {
	TopicName string   `json:"topicName"`
	Tags      []string `json:"tags"`
}

// Suggestion is one generated community. Either field may be empty when the
// model leaves it out.
type Suggestion struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type Output struct {
	Communities []Suggestion `json:"communities"`
}

// Generator produces community suggestions for a topic.
type Generator interface {
	Suggest(ctx context.Context, in Input) (*Output, error)
}

// Backend sends a rendered prompt to a model and returns its raw JSON reply.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is the Generator shared by every backend: it renders the prompt,
// validates both sides of the call and times it.
type Client struct {
	backend  Backend
	contract *validation.Contract
	timeout  time.Duration
	logger   logger.Logger
}

type Option func(*Client)

// WithTimeout bounds each backend call. Zero leaves the call unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// WithContract replaces the registry contract used for validation.
func WithContract(contract *validation.Contract) Option {
	return func(c *Client) { c.contract = contract }
}

func NewClient(backend Backend, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		logger:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.contract == nil {
		c.contract = validation.MustContract(registry.Default(), TaskType)
	}
	c.logger = c.logger.With(map[string]interface{}{"provider": backend.Name()})
	return c
}

func (c *Client) Suggest(ctx context.Context, in Input) (*Output, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if res := c.contract.ValidateInput(in); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, res.Error())
	}
	if strings.TrimSpace(in.TopicName) == "" {
		return nil, fmt.Errorf("%w: topicName is blank", ErrInvalidInput)
	}

	prompt, err := RenderPrompt(in)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := c.backend.Complete(ctx, prompt)
	if err != nil {
		c.observe(start, "error")
		return nil, fmt.Errorf("%s completion: %w", c.backend.Name(), err)
	}

	out, err := c.decode(raw)
	if err != nil {
		c.observe(start, "invalid")
		c.logger.Warn("Rejected suggestion response", map[string]interface{}{
			"error":  err,
			"length": len(raw),
		})
		return nil, err
	}

	c.observe(start, "ok")
	c.logger.Debug("Suggestions generated", map[string]interface{}{
		"topicName": in.TopicName,
		"count":     len(out.Communities),
	})
	return out, nil
}

func (c *Client) decode(raw string) (*Output, error) {
	data := []byte(stripFence(raw))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}
	if res := c.contract.ValidateOutputJSON(data); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, res.Error())
	}

	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}

func (c *Client) observe(start time.Time, status string) {
	metrics.SuggestionDuration.
		WithLabelValues(c.backend.Name(), status).
		Observe(time.Since(start).Seconds())
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
