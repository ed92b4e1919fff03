package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-match-service/internal/domain"
	"trip-match-service/internal/platform/obs"
	"trip-match-service/internal/ports"
)

// ORSGeocoder implements Geocoder using OpenRouteService (/geocode/search).
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	cache   ports.GeocodeCache
}

func NewORSGeocoder(apiKey string, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	geocoder := &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		country: "US",
		cache:   cache,
	}

	return geocoder, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Delegate to the batched path to reuse caching logic.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if o.normalize(address) == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	results, err := o.GeocodeMany(ctx, []string{address})
	if err != nil {
		return domain.Coordinates{}, err
	}

	c, ok := results[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	return c, nil
}

// GeocodeMany resolves addresses, consulting the persistent cache before
// issuing external API calls. Results are keyed by the address strings as
// given. Fresh lookups are written back to the cache best-effort.
func (o *ORSGeocoder) GeocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.GeocodeMany")(&err)

	normByInput := make(map[string]string, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	norms := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := o.normalize(a)
		if n == "" {
			return nil, fmt.Errorf("geocode: address %q is empty", a)
		}
		normByInput[a] = n

		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		norms = append(norms, n)
	}

	hits := make(map[string]domain.Coordinates)
	if o.cache != nil {
		var err error
		hits, err = o.cache.GetMany(ctx, norms)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}

	misses := make([]string, 0, len(norms))
	for _, n := range norms {
		if _, ok := hits[n]; !ok {
			misses = append(misses, n)
		}
	}

	fresh := make(map[string]domain.Coordinates, len(misses))
	for _, n := range misses {
		c, err := o.fetchGeocode(ctx, n)
		if err != nil {
			return nil, err
		}
		fresh[n] = c
	}

	if o.cache != nil && len(fresh) > 0 {
		if err := o.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		n := normByInput[a]
		if c, ok := hits[n]; ok {
			out[a] = c
			continue
		}
		if c, ok := fresh[n]; ok {
			out[a] = c
		}
	}

	return out, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// fetchGeocode resolves a single normalized address via /geocode/search.
// Zero candidates maps to ErrAddressNotFound; the first candidate wins
// (size=1 is requested, so ambiguity never reaches this code).
func (o *ORSGeocoder) fetchGeocode(ctx context.Context, norm string) (domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("boundary.country", o.country)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrAddressNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
