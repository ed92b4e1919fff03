package domain

// DefaultThresholdKm is the combinability threshold applied to both the
// pickup and dropoff legs unless a caller overrides them.
const DefaultThresholdKm = 2.0

// Per-leg combinability thresholds in kilometers.
type Thresholds struct {
	PickupKm  float64
	DropoffKm float64
}

// DefaultThresholds returns the standard 2 km threshold for both legs.
func DefaultThresholds() Thresholds {
	return Thresholds{PickupKm: DefaultThresholdKm, DropoffKm: DefaultThresholdKm}
}

// Verdict is a coarse recommendation derived from the per-leg checks.
// The pickup leg governs rejection; a far dropoff alone only downgrades
// the recommendation to "maybe".
type Verdict string

const (
	VerdictCombine Verdict = "combine"
	VerdictMaybe   Verdict = "maybe"
	VerdictReject  Verdict = "reject"
)

// Outcome of comparing two routes. Derived and stateless: recomputed fresh
// on every comparison, never cached or mutated.
//
// Combinable holds iff both leg distances are strictly below their
// thresholds.
type ComparisonResult struct {
	PickupDistanceKm  float64
	DropoffDistanceKm float64
	RouteALengthKm    float64
	RouteBLengthKm    float64
	Combinable        bool
	Verdict           Verdict
	Reasons           []string
}
