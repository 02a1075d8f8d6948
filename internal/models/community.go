// internal/models/community.go
package models

// Community is either a curated store record or an AI suggestion built for a
// single request. AI suggestions never carry Rating, MembersCount or Subtopics.
type Community struct {
	ID            string   `json:"id"`
	TopicID       string   `json:"topicId"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Rating        *float64 `json:"rating,omitempty"`
	MembersCount  *int     `json:"membersCount,omitempty"`
	Subtopics     []string `json:"subtopics,omitempty"`
	IsAISuggested bool     `json:"isAISuggested"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	DataAIHint    string   `json:"dataAiHint,omitempty"`
}

// MeetsRating reports whether the community passes a minimum rating filter.
// Communities without a rating always pass.
func (c Community) MeetsRating(min float64) bool {
	return c.Rating == nil || *c.Rating >= min
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
