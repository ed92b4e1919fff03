package services

import (
	"math"

	"trip-match-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance returns the great-circle distance between two coordinates in
// kilometers using the haversine formula.
//
// Total over valid coordinate ranges: any two finite, range-valid inputs
// produce a finite, non-negative result. Distance(a, a) == 0 and the
// function is symmetric within floating-point tolerance.
func Distance(a, b domain.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just past 1 for near-antipodal points, which
	// would make Sqrt(1-h) NaN.
	if h > 1 {
		h = 1
	}
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Evaluate decides whether two routes are geographically similar enough to
// be fulfilled as one combined trip.
//
// Combinable holds iff both the pickup-to-pickup and dropoff-to-dropoff
// distances are strictly below their thresholds. The verdict keeps the
// coarser dispatcher heuristic: a far pickup rejects outright, a far dropoff
// alone downgrades to "maybe".
//
// Pure function: no side effects, no I/O, deterministic for given inputs.
func Evaluate(routeA, routeB domain.RoutePair, t domain.Thresholds) domain.ComparisonResult {
	pickupKm := Distance(routeA.Pickup, routeB.Pickup)
	dropoffKm := Distance(routeA.Dropoff, routeB.Dropoff)

	pickupOK := pickupKm < t.PickupKm
	dropoffOK := dropoffKm < t.DropoffKm

	reasons := make([]string, 0, 2)
	if pickupOK {
		reasons = append(reasons, "pickup proximity ok")
	} else {
		reasons = append(reasons, "pickup proximity too far")
	}
	if dropoffOK {
		reasons = append(reasons, "dropoff detour ok")
	} else {
		reasons = append(reasons, "dropoff detour too far")
	}

	verdict := domain.VerdictReject
	switch {
	case pickupOK && dropoffOK:
		verdict = domain.VerdictCombine
	case pickupOK:
		verdict = domain.VerdictMaybe
	}

	return domain.ComparisonResult{
		PickupDistanceKm:  pickupKm,
		DropoffDistanceKm: dropoffKm,
		RouteALengthKm:    Distance(routeA.Pickup, routeA.Dropoff),
		RouteBLengthKm:    Distance(routeB.Pickup, routeB.Dropoff),
		Combinable:        pickupOK && dropoffOK,
		Verdict:           verdict,
		Reasons:           reasons,
	}
}
