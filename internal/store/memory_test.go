package store

import (
	"context"
	"testing"

	"topic-communities/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicIDs(topics []models.Topic) []string {
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func communityIDs(communities []models.Community) []string {
	ids := make([]string, len(communities))
	for i, c := range communities {
		ids[i] = c.ID
	}
	return ids
}

func TestMemory_FindTopicsByNameContains(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "lowercase", query: "mat", want: []string{"topic1", "topicMath"}},
		{name: "uppercase", query: "MAT", want: []string{"topic1", "topicMath"}},
		{name: "accented", query: "física", want: []string{"topicPhysics", "topicPE"}},
		{name: "inner substring", query: "literatura", want: []string{"topic5", "topicSpanish"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindTopicsByNameContains(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, topicIDs(got))
		})
	}
}

func TestMemory_GetTopic(t *testing.T) {
	s := NewSeeded()

	topic, err := s.GetTopic(context.Background(), "topic4")
	require.NoError(t, err)
	assert.Equal(t, "Química Orgánica", topic.Name)
	assert.Equal(t, []string{"compuestos", "reacciones", "laboratorio"}, topic.Tags)

	_, err = s.GetTopic(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_FindCommunities(t *testing.T) {
	s := NewMemory(SeedTopics(), append(SeedCommunities(), models.Community{
		ID: "commUnrated", TopicID: "topic4", Name: "Nuevos Químicos",
	}))
	ctx := context.Background()

	got, err := s.FindCommunities(ctx, "topicMath", 4.0)
	require.NoError(t, err)
	assert.Equal(t, []string{"commMathLearn", "commMathExplorers"}, communityIDs(got))

	got, err = s.FindCommunities(ctx, "topic4", 4.0)
	require.NoError(t, err)
	assert.Equal(t, []string{"commUnrated"}, communityIDs(got), "unrated communities pass the filter")

	got, err = s.FindCommunities(ctx, "topic4", 3.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"comm6", "commUnrated"}, communityIDs(got))

	got, err = s.FindCommunities(ctx, "topicEnglish", 4.0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	topic, err := s.GetTopic(ctx, "topic1")
	require.NoError(t, err)
	topic.Tags[0] = "mutated"
	topic.Name = "mutated"

	again, err := s.GetTopic(ctx, "topic1")
	require.NoError(t, err)
	assert.Equal(t, "cálculo", again.Tags[0])
	assert.Equal(t, "Matemáticas Avanzadas", again.Name)

	comms, err := s.FindCommunities(ctx, "topic1", 4.0)
	require.NoError(t, err)
	*comms[0].Rating = 1
	comms, _ = s.FindCommunities(ctx, "topic1", 4.0)
	assert.Len(t, comms, 2)
}

func TestMemory_CanceledContext(t *testing.T) {
	s := NewSeeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindTopicsByNameContains(ctx, "mat")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.GetTopic(ctx, "topic1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeed_Dataset(t *testing.T) {
	assert.Len(t, SeedTopics(), 13)
	assert.Len(t, SeedCommunities(), 9)

	for _, c := range SeedCommunities() {
		require.NotNil(t, c.Rating, c.ID)
	}
}

type stubSearcher struct {
	topics []models.Topic
	query  string
}

func (s *stubSearcher) SearchTopics(_ context.Context, query string) ([]models.Topic, error) {
	s.query = query
	return s.topics, nil
}

func TestWithSearchIndex_RoutesSearch(t *testing.T) {
	searcher := &stubSearcher{topics: []models.Topic{{ID: "indexed", Name: "Indexed", Tags: []string{}}}}
	s := WithSearchIndex(NewSeeded(), searcher)
	ctx := context.Background()

	got, err := s.FindTopicsByNameContains(ctx, "idx")
	require.NoError(t, err)
	assert.Equal(t, []string{"indexed"}, topicIDs(got))
	assert.Equal(t, "idx", searcher.query)

	topic, err := s.GetTopic(ctx, "topicMath")
	require.NoError(t, err)
	assert.Equal(t, "Matematicas", topic.Name)
}
