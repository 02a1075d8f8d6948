package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"topic-communities/internal/common/logger"
)

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Breaker stops calling a failing generator for a while. An open breaker
// fails fast with ErrCircuitOpen.
type Breaker struct {
	next Generator
	cb   *gobreaker.CircuitBreaker[*Output]
}

func NewBreaker(next Generator, cfg BreakerConfig, log logger.Logger) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Callers giving up and bad input say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Suggestion breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[*Output](settings)}
}

func (b *Breaker) Suggest(ctx context.Context, in Input) (*Output, error) {
	out, err := b.cb.Execute(func() (*Output, error) {
		return b.next.Suggest(ctx, in)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return out, err
}

// State reports the breaker state for health output.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
