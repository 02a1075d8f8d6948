package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"topic-communities/internal/common/cache"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	Store
	searches, gets, finds int
}

func (c *countingStore) FindTopicsByNameContains(ctx context.Context, q string) ([]models.Topic, error) {
	c.searches++
	return c.Store.FindTopicsByNameContains(ctx, q)
}

func (c *countingStore) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	c.gets++
	return c.Store.GetTopic(ctx, id)
}

func (c *countingStore) FindCommunities(ctx context.Context, id string, min float64) ([]models.Community, error) {
	c.finds++
	return c.Store.FindCommunities(ctx, id, min)
}

func newLRUCached(t *testing.T) (*Cached, *countingStore) {
	t.Helper()
	lru, err := cache.NewLRU(64)
	require.NoError(t, err)
	base := &countingStore{Store: NewSeeded()}
	return NewCached(base, lru, time.Minute, logger.NewTestLogger(t)), base
}

func TestCached_ServesRepeatsFromCache(t *testing.T) {
	s, base := newLRUCached(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		topics, err := s.FindTopicsByNameContains(ctx, "Mat")
		require.NoError(t, err)
		assert.Equal(t, []string{"topic1", "topicMath"}, topicIDs(topics))

		topic, err := s.GetTopic(ctx, "topic4")
		require.NoError(t, err)
		assert.Equal(t, []string{"compuestos", "reacciones", "laboratorio"}, topic.Tags)

		comms, err := s.FindCommunities(ctx, "topicMath", 4.0)
		require.NoError(t, err)
		assert.Len(t, comms, 2)
		require.NotNil(t, comms[0].Rating)
	}

	assert.Equal(t, 1, base.searches)
	assert.Equal(t, 1, base.gets)
	assert.Equal(t, 1, base.finds)
}

func TestCached_SearchKeyIgnoresCase(t *testing.T) {
	s, base := newLRUCached(t)
	ctx := context.Background()

	_, _ = s.FindTopicsByNameContains(ctx, "mat")
	_, _ = s.FindTopicsByNameContains(ctx, "MAT")
	assert.Equal(t, 1, base.searches)
}

func TestCached_NotFoundIsNotCached(t *testing.T) {
	s, base := newLRUCached(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.GetTopic(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 2, base.gets)
}

type failingCache struct{ sets int }

func (f *failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (f *failingCache) Set(context.Context, string, []byte, time.Duration) error {
	f.sets++
	return errors.New("connection refused")
}

func (f *failingCache) Delete(context.Context, ...string) error { return nil }

func TestCached_BackendFailureFallsThrough(t *testing.T) {
	fc := &failingCache{}
	base := &countingStore{Store: NewSeeded()}
	s := NewCached(base, fc, time.Minute, logger.NewNoOpLogger())

	for i := 0; i < 2; i++ {
		topic, err := s.GetTopic(context.Background(), "topicMath")
		require.NoError(t, err)
		assert.Equal(t, "Matematicas", topic.Name)
	}
	assert.Equal(t, 2, base.gets)
	assert.Equal(t, 2, fc.sets)
}

func TestCached_CorruptEntryIsDiscarded(t *testing.T) {
	lru, err := cache.NewLRU(8)
	require.NoError(t, err)
	require.NoError(t, lru.Set(context.Background(), "topic:topic1", []byte("{not json"), 0))

	base := &countingStore{Store: NewSeeded()}
	s := NewCached(base, lru, time.Minute, logger.NewNoOpLogger())

	topic, err := s.GetTopic(context.Background(), "topic1")
	require.NoError(t, err)
	assert.Equal(t, "topic1", topic.ID)
	assert.Equal(t, 1, base.gets)
}
