package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip-match-service/internal/domain"
	"trip-match-service/internal/ports"
)

// ErrMissingAddress reports that one or more of the four address fields is
// empty. It is surfaced before any geocoding happens.
var ErrMissingAddress = errors.New("all four addresses are required")

// Pickup and dropoff addresses of one delivery order.
type AddressPair struct {
	Pickup  string
	Dropoff string
}

type CompareTripsRequest struct {
	RouteA     AddressPair
	RouteB     AddressPair
	Thresholds domain.Thresholds
}

// CompareTrips resolves the four addresses of two delivery orders and
// evaluates whether the orders can be fulfilled as one combined trip.
//
// No partial results: either all four addresses geocode and a full
// ComparisonResult is produced, or an error is returned.
func CompareTrips(
	ctx context.Context,
	req CompareTripsRequest,
	geocoder ports.Geocoder,
) (*domain.ComparisonResult, error) {
	addresses := []string{
		strings.TrimSpace(req.RouteA.Pickup),
		strings.TrimSpace(req.RouteA.Dropoff),
		strings.TrimSpace(req.RouteB.Pickup),
		strings.TrimSpace(req.RouteB.Dropoff),
	}
	for _, a := range addresses {
		if a == "" {
			return nil, ErrMissingAddress
		}
	}

	coords, err := resolveAll(ctx, addresses, geocoder)
	if err != nil {
		return nil, fmt.Errorf("compare trips: %w", err)
	}

	for i, a := range addresses {
		if err := coords[i].Validate(); err != nil {
			return nil, fmt.Errorf("compare trips: geocoder returned invalid coordinates for %q: %w", a, err)
		}
	}

	routeA := domain.RoutePair{Pickup: coords[0], Dropoff: coords[1]}
	routeB := domain.RoutePair{Pickup: coords[2], Dropoff: coords[3]}

	result := Evaluate(routeA, routeB, req.Thresholds)
	return &result, nil
}

// resolveAll geocodes the given addresses in order, preferring a single
// batched lookup when the geocoder supports it.
func resolveAll(
	ctx context.Context,
	addresses []string,
	geocoder ports.Geocoder,
) ([]domain.Coordinates, error) {
	out := make([]domain.Coordinates, len(addresses))

	if bg, ok := geocoder.(ports.BatchGeocoder); ok {
		resolved, err := bg.GeocodeMany(ctx, addresses)
		if err != nil {
			return nil, fmt.Errorf("geocode addresses: %w", err)
		}
		for i, a := range addresses {
			c, ok := resolved[a]
			if !ok {
				return nil, fmt.Errorf("geocode %q: %w", a, ports.ErrAddressNotFound)
			}
			out[i] = c
		}
		return out, nil
	}

	for i, a := range addresses {
		c, err := geocoder.Geocode(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", a, err)
		}
		out[i] = c
	}

	return out, nil
}
