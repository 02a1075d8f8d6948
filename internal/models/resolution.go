// internal/models/resolution.go
package models

import "encoding/json"

// ResolutionResult is what the resolution flow returns for a selected topic.
// AISuggested is true only when every community came from the generator.
type ResolutionResult struct {
	Communities []Community `json:"communities"`
	AISuggested bool        `json:"aiSuggested"`
	TopicName   string      `json:"topicName,omitempty"`
}

// MarshalJSON keeps "communities" an array even when there are none.
func (r ResolutionResult) MarshalJSON() ([]byte, error) {
	type alias ResolutionResult
	if r.Communities == nil {
		r.Communities = []Community{}
	}
	return json.Marshal(alias(r))
}

// SearchResult is the payload returned for a topic search.
type SearchResult struct {
	Topics []Topic `json:"topics"`
	Count  int     `json:"count"`
}

// NewSearchResult wraps topics, never returning a nil slice.
func NewSearchResult(topics []Topic) SearchResult {
	if topics == nil {
		topics = []Topic{}
	}
	return SearchResult{Topics: topics, Count: len(topics)}
}
