package resolution

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"topic-communities/internal/models"
	"topic-communities/internal/suggest"
)

const (
	defaultCommunityName   = "Community"
	defaultSuggestionName  = "AI Suggested Community"
	defaultSuggestionHint  = "abstract concept"
	defaultPlaceholderBase = "https://placehold.co/300x200.png"
)

// uriComponent undoes the QueryEscape escapes that encodeURIComponent keeps literal.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func placeholderURL(base, name string) string {
	return base + "?text=" + uriComponent.Replace(url.QueryEscape(name))
}

// imageHint is the first two space-separated words of name, lowercased.
func imageHint(name string) string {
	words := strings.Split(strings.ToLower(name), " ")
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func (s *Service) shapeDirect(c models.Community) models.Community {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaultCommunityName
	}
	c.IsAISuggested = false
	if c.ImageURL == "" {
		c.ImageURL = placeholderURL(s.placeholder, c.Name)
	}
	if c.DataAIHint == "" {
		c.DataAIHint = imageHint(c.Name)
	}
	return c
}

func (s *Service) shapeSuggestions(topicID string, suggestions []suggest.Suggestion, at time.Time) []models.Community {
	out := make([]models.Community, 0, len(suggestions))
	for i, sugg := range suggestions {
		name := sugg.Name
		if strings.TrimSpace(name) == "" {
			name = defaultSuggestionName
		}
		hint := defaultSuggestionHint
		if sugg.Name != "" {
			hint = imageHint(sugg.Name)
		}
		out = append(out, models.Community{
			ID:            fmt.Sprintf("ai-%s-%d-%d", topicID, i, at.UnixMilli()),
			TopicID:       topicID,
			Name:          name,
			Description:   sugg.Description,
			IsAISuggested: true,
			ImageURL:      placeholderURL(s.placeholder, name),
			DataAIHint:    hint,
		})
	}
	return out
}
