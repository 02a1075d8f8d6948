package resolution

import (
	"topic-communities/internal/common/metrics"
)

const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeBlank = "blank"

	OutcomeDirect     = "direct"
	OutcomeAI         = "ai"
	OutcomeEmpty      = "empty"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"

	ReasonError       = "error"
	ReasonEmpty       = "empty"
	ReasonUnavailable = "unavailable"
)

// Observer is told about every search and resolution, including generator
// failures the flow swallows.
type Observer interface {
	SearchCompleted(outcome string)
	ResolutionCompleted(outcome string)
	SuggestionFailed(reason string, err error)
}

// PrometheusObserver records flow outcomes as counters.
type PrometheusObserver struct{}

func (PrometheusObserver) SearchCompleted(outcome string) {
	metrics.TopicSearches.WithLabelValues(outcome).Inc()
}

func (PrometheusObserver) ResolutionCompleted(outcome string) {
	metrics.CommunityResolutions.WithLabelValues(outcome).Inc()
}

func (PrometheusObserver) SuggestionFailed(reason string, _ error) {
	metrics.SuggestionFailures.WithLabelValues(reason).Inc()
}
