package ports

import (
	"context"
	"errors"

	"trip-match-service/internal/domain"
)

// ErrAddressNotFound reports that the geocoding provider returned zero
// candidates for an address. Callers match it with errors.Is.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a free-text address to geographic coordinates.
type Geocoder interface {
	// Return coordinates for the first candidate of the address.
	// Wraps ErrAddressNotFound when the provider has no candidates.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Resolve many addresses at once, keyed by the address strings as given.
	GeocodeMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
