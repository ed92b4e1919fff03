package dto

type RouteRequest struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
}

type ComparisonRequest struct {
	RouteA RouteRequest `json:"route_a"`
	RouteB RouteRequest `json:"route_b"`
	// ThresholdKm applies to both legs; the per-leg fields take precedence.
	ThresholdKm        *float64 `json:"threshold_km"`
	PickupThresholdKm  *float64 `json:"pickup_threshold_km"`
	DropoffThresholdKm *float64 `json:"dropoff_threshold_km"`
}

type ComparisonResponse struct {
	PickupDistanceKm  float64  `json:"pickup_distance_km"`
	DropoffDistanceKm float64  `json:"dropoff_distance_km"`
	RouteALengthKm    float64  `json:"route_a_length_km"`
	RouteBLengthKm    float64  `json:"route_b_length_km"`
	Combinable        bool     `json:"combinable"`
	Verdict           string   `json:"verdict"`
	Reasons           []string `json:"reasons"`
}
