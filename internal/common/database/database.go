// Package database opens the connections used by the store, the topic index
// and the cache.
package database

import "context"

// Pinger is implemented by every client here and used for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
