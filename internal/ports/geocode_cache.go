package ports

import (
	"context"

	"trip-match-service/internal/domain"
)

// Port: a boundary for persistent address -> coordinates caching.
// Address keys are expected to be consistent (e.g., normalized) by the caller.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses. Misses are simply
	// absent from the returned map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings in the cache.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
