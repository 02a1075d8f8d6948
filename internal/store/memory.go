package store

import (
	"context"
	"strings"

	"topic-communities/internal/models"
)

// Memory is an immutable in-memory store. It copies its input and hands out
// copies, so callers cannot mutate it.
type Memory struct {
	topics      []models.Topic
	byID        map[string]int
	communities []models.Community
}

func NewMemory(topics []models.Topic, communities []models.Community) *Memory {
	m := &Memory{
		topics:      make([]models.Topic, len(topics)),
		byID:        make(map[string]int, len(topics)),
		communities: make([]models.Community, len(communities)),
	}
	for i, t := range topics {
		m.topics[i] = cloneTopic(t)
		if _, dup := m.byID[t.ID]; !dup {
			m.byID[t.ID] = i
		}
	}
	for i, c := range communities {
		m.communities[i] = cloneCommunity(c)
	}
	return m
}

// NewSeeded returns a Memory store holding the reference dataset.
func NewSeeded() *Memory {
	return NewMemory(SeedTopics(), SeedCommunities())
}

func (m *Memory) FindTopicsByNameContains(ctx context.Context, query string) ([]models.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []models.Topic
	for _, t := range m.topics {
		if strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, cloneTopic(t))
		}
	}
	return out, nil
}

func (m *Memory) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	t := cloneTopic(m.topics[i])
	return &t, nil
}

func (m *Memory) FindCommunities(ctx context.Context, topicID string, minRating float64) ([]models.Community, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Community
	for _, c := range m.communities {
		if c.TopicID == topicID && c.MeetsRating(minRating) {
			out = append(out, cloneCommunity(c))
		}
	}
	return out, nil
}

// Topics returns a copy of every topic, in store order.
func (m *Memory) Topics() []models.Topic {
	out := make([]models.Topic, len(m.topics))
	for i, t := range m.topics {
		out[i] = cloneTopic(t)
	}
	return out
}

// Communities returns a copy of every community, in store order.
func (m *Memory) Communities() []models.Community {
	out := make([]models.Community, len(m.communities))
	for i, c := range m.communities {
		out[i] = cloneCommunity(c)
	}
	return out
}

func cloneTopic(t models.Topic) models.Topic {
	if t.Tags != nil {
		t.Tags = append([]string{}, t.Tags...)
	}
	if t.AverageRating != nil {
		t.AverageRating = models.Float(*t.AverageRating)
	}
	return t
}

func cloneCommunity(c models.Community) models.Community {
	if c.Subtopics != nil {
		c.Subtopics = append([]string{}, c.Subtopics...)
	}
	if c.Rating != nil {
		c.Rating = models.Float(*c.Rating)
	}
	if c.MembersCount != nil {
		c.MembersCount = models.Int(*c.MembersCount)
	}
	return c
}
