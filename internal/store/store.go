// Package store provides read access to topics and their curated communities.
package store

import (
	"context"
	"errors"

	"topic-communities/internal/models"
)

// ErrNotFound is returned by GetTopic when no topic has the requested id.
var ErrNotFound = errors.New("topic not found")

// Store is the topic/community collaborator used by the resolution flow.
type Store interface {
	// FindTopicsByNameContains returns topics whose name contains query,
	// ignoring case, in store order.
	FindTopicsByNameContains(ctx context.Context, query string) ([]models.Topic, error)
	// GetTopic returns ErrNotFound when id is unknown.
	GetTopic(ctx context.Context, id string) (*models.Topic, error)
	// FindCommunities returns communities of topicID rated at least
	// minRating. Unrated communities are included.
	FindCommunities(ctx context.Context, topicID string, minRating float64) ([]models.Community, error)
}

// TopicSearcher serves name searches from a dedicated index.
type TopicSearcher interface {
	SearchTopics(ctx context.Context, query string) ([]models.Topic, error)
}

type indexed struct {
	Store
	searcher TopicSearcher
}

// WithSearchIndex routes name searches to searcher and everything else to base.
func WithSearchIndex(base Store, searcher TopicSearcher) Store {
	return &indexed{Store: base, searcher: searcher}
}

func (s *indexed) FindTopicsByNameContains(ctx context.Context, query string) ([]models.Topic, error) {
	return s.searcher.SearchTopics(ctx, query)
}
