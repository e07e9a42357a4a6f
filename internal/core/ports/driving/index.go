package driving

import "context"

// IndexService manages the corpus index.
type IndexService interface {
	// Ping verifies the engine is reachable.
	Ping(ctx context.Context) error

	// Create creates the corpus index. created is false when it already existed.
	Create(ctx context.Context) (created bool, err error)
}
