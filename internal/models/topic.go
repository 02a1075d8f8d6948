// internal/models/topic.go
package models

import "strings"

// Topic is an educational subject owned by the store.
// A nil Tags slice means the stored record had no usable tags.
type Topic struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Tags          []string `json:"tags"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// HasName reports whether the topic carries a name usable for display and prompting.
func (t Topic) HasName() bool {
	return strings.TrimSpace(t.Name) != ""
}

// HasTags reports whether the tags field was present in the stored record.
func (t Topic) HasTags() bool {
	return t.Tags != nil
}
