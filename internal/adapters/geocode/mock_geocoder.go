package geocode

import (
	"context"
	"fmt"

	"trip-match-service/internal/domain"
	"trip-match-service/internal/ports"
)

type MockEntry struct {
	Address  string
	Lat, Lon float64
}

// MockGeocoder resolves addresses from a fixed table. Unknown addresses
// behave like a provider returning zero candidates.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(entries []MockEntry) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(entries))
	for _, e := range entries {
		m[e.Address] = domain.Coordinates{Lat: e.Lat, Lon: e.Lon}
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	return c, nil
}
