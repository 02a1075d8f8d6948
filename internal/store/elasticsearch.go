package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"topic-communities/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const topicIndexMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "seq":            {"type": "long"},
      "name":           {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "tags":           {"type": "keyword"},
      "average_rating": {"type": "float"}
    }
  }
}`

// TopicIndex serves topic name searches from Elasticsearch.
type TopicIndex struct {
	client *elasticsearch.Client
	index  string
	limit  int
}

func NewTopicIndex(client *elasticsearch.Client, index string, limit int) *TopicIndex {
	if limit <= 0 {
		limit = 50
	}
	return &TopicIndex{client: client, index: index, limit: limit}
}

type topicDocument struct {
	ID            string          `json:"id"`
	Seq           int             `json:"seq"`
	Name          string          `json:"name"`
	Tags          json.RawMessage `json:"tags,omitempty"`
	AverageRating *float64        `json:"average_rating,omitempty"`
}

func (d topicDocument) topic() models.Topic {
	t := models.Topic{ID: d.ID, Name: d.Name, AverageRating: d.AverageRating}
	var tags []string
	if len(d.Tags) > 0 && json.Unmarshal(d.Tags, &tags) == nil {
		t.Tags = tags
	}
	return t
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source topicDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchTopics runs a case-insensitive wildcard match on the keyword name,
// ordered by insertion sequence.
func (ix *TopicIndex) SearchTopics(ctx context.Context, query string) ([]models.Topic, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"name.keyword": map[string]interface{}{
					"value":            "*" + escapeWildcard(query) + "*",
					"case_insensitive": true,
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"seq": map[string]interface{}{"order": "asc"}},
		},
	})
	if err != nil {
		return nil, err
	}

	size := ix.limit
	req := esapi.SearchRequest{
		Index: []string{ix.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, ix.client)
	if err != nil {
		return nil, fmt.Errorf("search topics: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search topics", res)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	topics := make([]models.Topic, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		topics = append(topics, hit.Source.topic())
	}
	return topics, nil
}

// EnsureIndex creates the topic index with its mapping if it is missing.
func (ix *TopicIndex) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{ix.index}}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("check index %s: %w", ix.index, err)
	}
	exists.Body.Close()

	switch exists.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: %s", ix.index, exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{
		Index: ix.index,
		Body:  strings.NewReader(topicIndexMapping),
	}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", ix.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("create index "+ix.index, res)
	}
	return nil
}

// IndexTopics bulk-indexes topics, keeping their order as the sort sequence.
func (ix *TopicIndex) IndexTopics(ctx context.Context, topics []models.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, t := range topics {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": ix.index, "_id": t.ID}}
		doc := topicDocument{ID: t.ID, Seq: i, Name: t.Name, AverageRating: t.AverageRating}
		if t.Tags != nil {
			raw, err := json.Marshal(t.Tags)
			if err != nil {
				return err
			}
			doc.Tags = raw
		}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	res, err := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "true",
	}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("bulk index topics: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("bulk index topics", res)
	}

	var parsed struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if parsed.Errors {
		return fmt.Errorf("bulk index topics: some documents were rejected")
	}
	return nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("%s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

// escapeWildcard escapes the wildcard query metacharacters.
func escapeWildcard(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(s)
}
