package store

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topic-communities/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *TopicIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewTopicIndex(client, "topics", 25)
}

func TestTopicIndex_SearchTopics(t *testing.T) {
	var captured map[string]interface{}
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topics/_search", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("size"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		io.WriteString(w, `{"hits":{"hits":[
			{"_source":{"id":"topic1","seq":0,"name":"Matemáticas Avanzadas","tags":["cálculo"],"average_rating":4.5}},
			{"_source":{"id":"topicBad","seq":1,"name":"Matemática","tags":"not-a-list"}},
			{"_source":{"id":"topicNull","seq":2,"name":"Matemática nula","tags":null}}
		]}}`)
	})

	got, err := ix.SearchTopics(context.Background(), "Mat*")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"cálculo"}, got[0].Tags)
	assert.Nil(t, got[1].Tags, "malformed tags decode as missing")
	assert.Nil(t, got[2].Tags)

	wildcard := captured["query"].(map[string]interface{})["wildcard"].(map[string]interface{})["name.keyword"].(map[string]interface{})
	assert.Equal(t, `*Mat\**`, wildcard["value"])
	assert.Equal(t, true, wildcard["case_insensitive"])
}

func TestTopicIndex_SearchTopics_ErrorStatus(t *testing.T) {
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":"cluster unavailable"}`)
	})

	_, err := ix.SearchTopics(context.Background(), "mat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTopicIndex_EnsureIndex(t *testing.T) {
	tests := []struct {
		name        string
		existStatus int
		wantCreate  bool
	}{
		{name: "already exists", existStatus: http.StatusOK},
		{name: "missing", existStatus: http.StatusNotFound, wantCreate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodHead:
					w.WriteHeader(tt.existStatus)
				case http.MethodPut:
					created = true
					body, _ := io.ReadAll(r.Body)
					assert.Contains(t, string(body), `"mappings"`)
					io.WriteString(w, `{"acknowledged":true}`)
				default:
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
					w.WriteHeader(http.StatusMethodNotAllowed)
				}
			})

			require.NoError(t, ix.EnsureIndex(context.Background()))
			assert.Equal(t, tt.wantCreate, created)
		})
	}
}

func TestTopicIndex_IndexTopics(t *testing.T) {
	var lines []string
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		io.WriteString(w, `{"errors":false,"items":[]}`)
	})

	topics := []models.Topic{
		{ID: "a", Name: "A", Tags: []string{"x"}},
		{ID: "b", Name: "B"},
	}
	require.NoError(t, ix.IndexTopics(context.Background(), topics))
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"_id":"a"`)
	assert.Contains(t, lines[1], `"tags":["x"]`)
	assert.Contains(t, lines[3], `"seq":1`)
	assert.False(t, strings.Contains(lines[3], `"tags"`))
}

func TestTopicIndex_IndexTopics_RejectedDocuments(t *testing.T) {
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errors":true,"items":[]}`)
	})
	err := ix.IndexTopics(context.Background(), []models.Topic{{ID: "a", Name: "A"}})
	assert.Error(t, err)
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, `a\*b\?c\\`, escapeWildcard(`a*b?c\`))
}
