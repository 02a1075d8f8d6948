package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"topic-communities/internal/common/cache"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/metrics"
	"topic-communities/internal/models"
)

// Cached is a read-through cache in front of another Store. Cache failures
// are logged and never fail a lookup. Misses on GetTopic are not cached.
type Cached struct {
	base   Store
	cache  cache.Cache
	ttl    time.Duration
	logger logger.Logger
}

func NewCached(base Store, c cache.Cache, ttl time.Duration, log logger.Logger) *Cached {
	return &Cached{
		base:   base,
		cache:  c,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "store_cache"}),
	}
}

func (s *Cached) FindTopicsByNameContains(ctx context.Context, query string) ([]models.Topic, error) {
	key := "search:" + strings.ToLower(query)
	var topics []models.Topic
	if s.lookup(ctx, "search", key, &topics) {
		return topics, nil
	}

	topics, err := s.base.FindTopicsByNameContains(ctx, query)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, topics)
	return topics, nil
}

func (s *Cached) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	key := "topic:" + id
	var topic models.Topic
	if s.lookup(ctx, "topic", key, &topic) {
		return &topic, nil
	}

	t, err := s.base.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, t)
	return t, nil
}

func (s *Cached) FindCommunities(ctx context.Context, topicID string, minRating float64) ([]models.Community, error) {
	key := fmt.Sprintf("communities:%s:%g", topicID, minRating)
	var communities []models.Community
	if s.lookup(ctx, "communities", key, &communities) {
		return communities, nil
	}

	communities, err := s.base.FindCommunities(ctx, topicID, minRating)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, communities)
	return communities, nil
}

func (s *Cached) lookup(ctx context.Context, kind, key string, dst interface{}) bool {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if !found {
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		s.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		_ = s.cache.Delete(ctx, key)
		return false
	}
	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return true
}

func (s *Cached) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache encode failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
