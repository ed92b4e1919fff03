package domain

import "fmt"

// Immutable geographic coordinates in degrees (WGS84).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate checks that the coordinates fall within valid degree ranges.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Represents one delivery order's endpoints.
// A RoutePair is built once per comparison request and discarded afterwards;
// it carries no identity or lifecycle of its own.
type RoutePair struct {
	Pickup  Coordinates
	Dropoff Coordinates
}
