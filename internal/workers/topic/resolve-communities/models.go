// internal/workers/topic/resolve-communities/models.go
package resolvecommunities

import "topic-communities/internal/models"

type Input struct {
	TopicID string `json:"topicId"`
}

// Output is written back to the process as-is: communities, aiSuggested and
// topicName become process variables.
type Output = models.ResolutionResult
