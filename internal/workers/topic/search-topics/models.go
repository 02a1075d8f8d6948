// internal/workers/topic/search-topics/models.go
package searchtopics

import "topic-communities/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Topics []models.Topic `json:"topics"`
	Count  int            `json:"count"`
}
