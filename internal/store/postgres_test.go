package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"topic-communities/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

// ==========================
// Topic Queries
// ==========================

func TestPostgres_FindTopicsByNameContains(t *testing.T) {
	s, mock := newPostgresMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "tags", "average_rating"}).
		AddRow("topic1", "Matemáticas Avanzadas", "{cálculo,álgebra,geometría}", 4.5).
		AddRow("topicBroken", "Matemática rota", nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(queryTopicsByName)).
		WithArgs(`%mat\%\_%`).
		WillReturnRows(rows)

	got, err := s.FindTopicsByNameContains(context.Background(), `mat%_`)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "topic1", got[0].ID)
	assert.Equal(t, []string{"cálculo", "álgebra", "geometría"}, got[0].Tags)
	require.NotNil(t, got[0].AverageRating)
	assert.Equal(t, 4.5, *got[0].AverageRating)

	assert.Nil(t, got[1].Tags, "NULL tags map to nil")
	assert.Nil(t, got[1].AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindTopicsByNameContains_QueryError(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryTopicsByName)).
		WillReturnError(errors.New("connection refused"))

	_, err := s.FindTopicsByNameContains(context.Background(), "mat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query topics")
}

func TestPostgres_GetTopic(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		wantErr error
		want    *models.Topic
	}{
		{
			name: "found",
			rows: sqlmock.NewRows([]string{"id", "name", "tags", "average_rating"}).
				AddRow("topicMath", "Matematicas", "{algebra}", 4.7),
			want: &models.Topic{ID: "topicMath", Name: "Matematicas", Tags: []string{"algebra"}, AverageRating: models.Float(4.7)},
		},
		{
			name:    "not found",
			rows:    sqlmock.NewRows([]string{"id", "name", "tags", "average_rating"}),
			wantErr: ErrNotFound,
		},
		{
			name: "null name",
			rows: sqlmock.NewRows([]string{"id", "name", "tags", "average_rating"}).
				AddRow("topicX", nil, "{}", nil),
			want: &models.Topic{ID: "topicX", Tags: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newPostgresMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(queryTopicByID)).WillReturnRows(tt.rows)

			got, err := s.GetTopic(context.Background(), "id")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Community Queries
// ==========================

func TestPostgres_FindCommunities(t *testing.T) {
	s, mock := newPostgresMock(t)

	cols := []string{"id", "topic_id", "name", "description", "rating", "members_count", "subtopics", "image_url", "data_ai_hint"}
	rows := sqlmock.NewRows(cols).
		AddRow("commMathLearn", "topicMath", "Matematic's learns", "", 4.5, 100, "{\"Number theory\"}", nil, "mathematics learning").
		AddRow("commNew", "topicMath", "Nueva", nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(queryCommunities)).
		WithArgs("topicMath", 4.0).
		WillReturnRows(rows)

	got, err := s.FindCommunities(context.Background(), "topicMath", 4.0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "commMathLearn", got[0].ID)
	assert.Equal(t, []string{"Number theory"}, got[0].Subtopics)
	assert.Equal(t, 100, *got[0].MembersCount)
	assert.Empty(t, got[0].ImageURL)
	assert.Equal(t, "mathematics learning", got[0].DataAIHint)

	assert.Nil(t, got[1].Rating)
	assert.Nil(t, got[1].MembersCount)
	assert.Nil(t, got[1].Subtopics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Seeding
// ==========================

func TestPostgres_MigrateAndUpsert(t *testing.T) {
	s, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS topics")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Migrate(ctx))

	topic := SeedTopics()[0]
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO topics")).
		WithArgs(topic.ID, topic.Name, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.UpsertTopic(ctx, topic))

	community := SeedCommunities()[0]
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO communities")).
		WithArgs(community.ID, community.TopicID, community.Name, community.Description,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.UpsertCommunity(ctx, community))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO topics")).
		WillReturnError(errors.New("unique violation"))
	err := s.UpsertTopic(ctx, topic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert topic topic1")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
