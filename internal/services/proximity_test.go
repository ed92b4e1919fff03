package services

import (
	"math"
	"reflect"
	"testing"

	"trip-match-service/internal/domain"
)

var (
	nyc    = domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	nycOff = domain.Coordinates{Lat: 40.7138, Lon: -74.0070}
	la     = domain.Coordinates{Lat: 34.0522, Lon: -118.2437}
)

func TestDistanceIdentity(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		nyc,
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]domain.Coordinates{
		{nyc, la},
		{nyc, nycOff},
		{{Lat: -45, Lon: -170}, {Lat: 60, Lon: 175}},
	}

	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("Distance(%v, %v) = %v, want >= 0", pair[0], pair[1], ab)
		}
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	a := nyc
	b := domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	c := la

	if ac, detour := Distance(a, c), Distance(a, b)+Distance(b, c); ac > detour+1e-9 {
		t.Errorf("triangle inequality violated: direct %v > detour %v", ac, detour)
	}
}

// Distance is total: antipodal and near-antipodal inputs sit at the edge of
// the haversine formula, where rounding can push the intermediate term past 1.
func TestDistanceAntipodalFinite(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusKm

	exact := [][2]domain.Coordinates{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: 90, Lon: 0}, {Lat: -90, Lon: 0}},
		{{Lat: 40.7128, Lon: -74.0060}, {Lat: -40.7128, Lon: 105.9940}},
	}
	for _, pair := range exact {
		d := Distance(pair[0], pair[1])
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("Distance(%v, %v) = %v, want finite", pair[0], pair[1], d)
		}
		if math.Abs(d-halfCircumference) > 1 {
			t.Errorf("Distance(%v, %v) = %v, want ~%v", pair[0], pair[1], d, halfCircumference)
		}
	}

	for lat := -90.0; lat <= 90.0; lat += 0.03 {
		a := domain.Coordinates{Lat: lat, Lon: 0}
		b := domain.Coordinates{Lat: -lat + 2.5e-12, Lon: 180}

		d := Distance(a, b)
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			t.Fatalf("Distance(%v, %v) = %v, want finite and non-negative", a, b, d)
		}
	}
}

func TestDistanceNearbyPoints(t *testing.T) {
	d := Distance(nyc, nycOff)
	if d < 0.12 || d > 0.15 {
		t.Fatalf("Distance(nyc, nycOff) = %v, want ~0.13-0.14 km", d)
	}
}

func TestDistanceCrossCountry(t *testing.T) {
	d := Distance(nyc, la)
	if math.Abs(d-3936) > 10 {
		t.Fatalf("Distance(nyc, la) = %v, want ~3936 km", d)
	}
}

func TestEvaluateBothLegsUnderThreshold(t *testing.T) {
	// Pickups ~1.50 km apart at the equator, dropoffs ~1.89 km apart at lat 10.
	routeA := domain.RoutePair{
		Pickup:  domain.Coordinates{Lat: 0, Lon: 0},
		Dropoff: domain.Coordinates{Lat: 10, Lon: 10},
	}
	routeB := domain.RoutePair{
		Pickup:  domain.Coordinates{Lat: 0, Lon: 0.0135},
		Dropoff: domain.Coordinates{Lat: 10, Lon: 10.0173},
	}

	res := Evaluate(routeA, routeB, domain.DefaultThresholds())

	if res.PickupDistanceKm >= 2.0 || res.DropoffDistanceKm >= 2.0 {
		t.Fatalf("distances = %v / %v, want both under 2.0", res.PickupDistanceKm, res.DropoffDistanceKm)
	}
	if !res.Combinable {
		t.Fatal("expected combinable")
	}
	if res.Verdict != domain.VerdictCombine {
		t.Fatalf("verdict = %q, want %q", res.Verdict, domain.VerdictCombine)
	}
}

func TestEvaluateOneLegOverThreshold(t *testing.T) {
	// Pickups ~1.50 km apart, dropoffs ~2.10 km apart: one far leg rejects.
	routeA := domain.RoutePair{
		Pickup:  domain.Coordinates{Lat: 0, Lon: 0},
		Dropoff: domain.Coordinates{Lat: 10, Lon: 10},
	}
	routeB := domain.RoutePair{
		Pickup:  domain.Coordinates{Lat: 0, Lon: 0.0135},
		Dropoff: domain.Coordinates{Lat: 10, Lon: 10.0192},
	}

	res := Evaluate(routeA, routeB, domain.DefaultThresholds())

	if res.DropoffDistanceKm <= 2.0 {
		t.Fatalf("dropoff distance = %v, want over 2.0", res.DropoffDistanceKm)
	}
	if res.Combinable {
		t.Fatal("expected not combinable when one leg is over threshold")
	}
	if res.Verdict != domain.VerdictMaybe {
		t.Fatalf("verdict = %q, want %q (pickup ok, dropoff far)", res.Verdict, domain.VerdictMaybe)
	}
}

func TestEvaluateFarPickupRejects(t *testing.T) {
	routeA := domain.RoutePair{
		Pickup:  nyc,
		Dropoff: nyc,
	}
	routeB := domain.RoutePair{
		Pickup:  la,
		Dropoff: nyc,
	}

	res := Evaluate(routeA, routeB, domain.DefaultThresholds())

	if res.Combinable {
		t.Fatal("expected not combinable")
	}
	if res.Verdict != domain.VerdictReject {
		t.Fatalf("verdict = %q, want %q", res.Verdict, domain.VerdictReject)
	}
}

// The decision rule is a strict inequality: a leg exactly at the threshold
// is not combinable.
func TestEvaluateExactThresholdNotCombinable(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 0.015}

	exact := Distance(a, b)

	routeA := domain.RoutePair{Pickup: a, Dropoff: a}
	routeB := domain.RoutePair{Pickup: b, Dropoff: a}

	res := Evaluate(routeA, routeB, domain.Thresholds{PickupKm: exact, DropoffKm: exact})

	if res.Combinable {
		t.Fatal("distance equal to threshold must not be combinable")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	routeA := domain.RoutePair{Pickup: nyc, Dropoff: la}
	routeB := domain.RoutePair{Pickup: nycOff, Dropoff: la}

	first := Evaluate(routeA, routeB, domain.DefaultThresholds())
	second := Evaluate(routeA, routeB, domain.DefaultThresholds())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Evaluate not deterministic: %+v vs %+v", first, second)
	}
}

func TestEvaluateRouteLengths(t *testing.T) {
	routeA := domain.RoutePair{Pickup: nyc, Dropoff: la}
	routeB := domain.RoutePair{Pickup: nyc, Dropoff: nycOff}

	res := Evaluate(routeA, routeB, domain.DefaultThresholds())

	if math.Abs(res.RouteALengthKm-Distance(nyc, la)) > 1e-9 {
		t.Errorf("RouteALengthKm = %v, want %v", res.RouteALengthKm, Distance(nyc, la))
	}
	if math.Abs(res.RouteBLengthKm-Distance(nyc, nycOff)) > 1e-9 {
		t.Errorf("RouteBLengthKm = %v, want %v", res.RouteBLengthKm, Distance(nyc, nycOff))
	}
}
