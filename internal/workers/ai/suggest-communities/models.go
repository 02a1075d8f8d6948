// internal/workers/ai/suggest-communities/models.go
package suggestcommunities

import "topic-communities/internal/suggest"

type Input = suggest.Input

type Output = suggest.Output
