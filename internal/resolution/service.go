// Package resolution implements topic search and the community resolution
// flow: direct store lookup first, generated suggestions as the fallback.
package resolution

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"topic-communities/internal/common/logger"
	"topic-communities/internal/models"
	"topic-communities/internal/store"
	"topic-communities/internal/suggest"
)

// DefaultMinRating is the rating a stored community needs to be shown.
const DefaultMinRating = 4.0

type Service struct {
	store       store.Store
	generator   suggest.Generator
	logger      logger.Logger
	observer    Observer
	tracker     *Tracker
	minRating   float64
	placeholder string
	now         func() time.Time
}

type Option func(*Service)

func WithLogger(log logger.Logger) Option { return func(s *Service) { s.logger = log } }

func WithObserver(o Observer) Option { return func(s *Service) { s.observer = o } }

func WithTracker(t *Tracker) Option { return func(s *Service) { s.tracker = t } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithMinRating(r float64) Option { return func(s *Service) { s.minRating = r } }

// WithPlaceholderImage sets the image URL that generated placeholders extend.
func WithPlaceholderImage(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.placeholder = base
		}
	}
}

// NewService builds the flow. gen may be nil, in which case the fallback
// never produces suggestions.
func NewService(st store.Store, gen suggest.Generator, opts ...Option) *Service {
	s := &Service{
		store:       st,
		generator:   gen,
		logger:      logger.NewNoOpLogger(),
		observer:    PrometheusObserver{},
		tracker:     NewTracker(),
		minRating:   DefaultMinRating,
		placeholder: defaultPlaceholderBase,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchTopics returns topics whose name contains query, ignoring case,
// ordered by where the match starts. A blank query never reaches the store.
func (s *Service) SearchTopics(ctx context.Context, query string) ([]models.Topic, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.observer.SearchCompleted(OutcomeBlank)
		return []models.Topic{}, nil
	}

	found, err := s.store.FindTopicsByNameContains(ctx, query)
	if err != nil {
		s.observer.SearchCompleted(OutcomeError)
		s.logger.Error("Error searching topics", map[string]interface{}{
			"query": query,
			"error": err,
		})
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}

	needle := strings.ToLower(query)
	topics := make([]models.Topic, 0, len(found))
	for _, t := range found {
		if !t.HasName() || !t.HasTags() {
			s.logger.Warn("Topic has malformed data, skipping", map[string]interface{}{
				"topicId": t.ID,
			})
			continue
		}
		if strings.Contains(strings.ToLower(t.Name), needle) {
			topics = append(topics, t)
		}
	}

	slices.SortStableFunc(topics, func(a, b models.Topic) int {
		return matchPosition(a.Name, needle) - matchPosition(b.Name, needle)
	})

	if len(topics) == 0 {
		s.observer.SearchCompleted(OutcomeMiss)
	} else {
		s.observer.SearchCompleted(OutcomeHit)
	}
	return topics, nil
}

// ResolveCommunitiesForTopic returns the stored communities of a topic that
// pass the rating filter or, when there are none, generated suggestions.
// Generator failures are reported to the observer and yield an empty result.
func (s *Service) ResolveCommunitiesForTopic(ctx context.Context, topicID string) (*models.ResolutionResult, error) {
	topic, err := s.loadTopic(ctx, topicID)
	if err != nil {
		s.observer.ResolutionCompleted(OutcomeError)
		s.logger.Error("Error resolving communities", map[string]interface{}{
			"topicId": topicID,
			"error":   err,
		})
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}
	log := s.logger.With(map[string]interface{}{
		"topicId":   topic.ID,
		"topicName": topic.Name,
	})

	if !topic.HasTags() {
		log.Warn("Topic tags are missing, suggestions might be affected", nil)
	}

	stored, err := s.store.FindCommunities(ctx, topicID, s.minRating)
	if err != nil {
		s.observer.ResolutionCompleted(OutcomeError)
		log.Error("Error fetching communities", map[string]interface{}{"error": err})
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}

	direct := make([]models.Community, 0, len(stored))
	for _, c := range stored {
		if !c.MeetsRating(s.minRating) {
			continue
		}
		direct = append(direct, s.shapeDirect(c))
	}
	if len(direct) > 0 {
		s.observer.ResolutionCompleted(OutcomeDirect)
		return &models.ResolutionResult{Communities: direct, AISuggested: false, TopicName: topic.Name}, nil
	}

	if suggested := s.suggest(ctx, log, topic); len(suggested) > 0 {
		s.observer.ResolutionCompleted(OutcomeAI)
		log.Info("AI suggested communities", map[string]interface{}{"count": len(suggested)})
		return &models.ResolutionResult{Communities: suggested, AISuggested: true, TopicName: topic.Name}, nil
	}

	s.observer.ResolutionCompleted(OutcomeEmpty)
	return &models.ResolutionResult{Communities: []models.Community{}, AISuggested: false, TopicName: topic.Name}, nil
}

func (s *Service) loadTopic(ctx context.Context, topicID string) (*models.Topic, error) {
	if strings.TrimSpace(topicID) == "" {
		return nil, fmt.Errorf("%w: empty topic id", ErrTopicNotFound)
	}
	topic, err := s.store.GetTopic(ctx, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	}
	if err != nil {
		return nil, err
	}
	if !topic.HasName() {
		return nil, fmt.Errorf("%w: topic %s", ErrMalformedTopicData, topicID)
	}
	return topic, nil
}

func (s *Service) suggest(ctx context.Context, log logger.Logger, topic *models.Topic) []models.Community {
	if s.generator == nil {
		s.observer.SuggestionFailed(ReasonUnavailable, nil)
		log.Warn("No suggestion generator configured", nil)
		return nil
	}

	tags := topic.Tags
	if tags == nil {
		tags = []string{}
	}
	log.Info("No direct communities, trying AI suggestions", map[string]interface{}{"tags": tags})

	out, err := s.generator.Suggest(ctx, suggest.Input{TopicName: topic.Name, Tags: tags})
	if err != nil {
		s.observer.SuggestionFailed(ReasonError, err)
		log.Error("Error during AI suggestion", map[string]interface{}{"error": err})
		return nil
	}
	if out == nil || len(out.Communities) == 0 {
		s.observer.SuggestionFailed(ReasonEmpty, nil)
		log.Info("AI returned no suggestions", nil)
		return nil
	}
	return s.shapeSuggestions(topic.ID, out.Communities, s.now())
}

// SearchTopicsForSession is SearchTopics where a newer search of the same
// session supersedes this one.
func (s *Service) SearchTopicsForSession(ctx context.Context, session, query string) ([]models.Topic, error) {
	ctx, ticket := s.tracker.Begin(ctx, sessionKey(session, "search"))
	defer ticket.Done()

	topics, err := s.SearchTopics(ctx, query)
	if !ticket.Current() {
		s.observer.SearchCompleted(OutcomeSuperseded)
		return nil, ErrSuperseded
	}
	return topics, err
}

// ResolveForSession is ResolveCommunitiesForTopic where selecting another
// topic in the same session supersedes this request. A stale result is
// discarded with ErrSuperseded.
func (s *Service) ResolveForSession(ctx context.Context, session, topicID string) (*models.ResolutionResult, error) {
	ctx, ticket := s.tracker.Begin(ctx, sessionKey(session, "communities"))
	defer ticket.Done()

	res, err := s.ResolveCommunitiesForTopic(ctx, topicID)
	if !ticket.Current() {
		s.observer.ResolutionCompleted(OutcomeSuperseded)
		s.logger.Info("Discarding superseded resolution", map[string]interface{}{
			"topicId": topicID,
			"session": session,
		})
		return nil, ErrSuperseded
	}
	return res, err
}

// matchPosition is the character offset of needle in the lowercased name.
func matchPosition(name, needle string) int {
	lower := strings.ToLower(name)
	i := strings.Index(lower, needle)
	if i < 0 {
		return i
	}
	return utf8.RuneCountInString(lower[:i])
}

func sessionKey(session, kind string) string {
	if session == "" {
		return ""
	}
	return session + "/" + kind
}
