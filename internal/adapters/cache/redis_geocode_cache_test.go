package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trip-match-service/internal/domain"
)

func newTestRedisCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisGeocodeCache(client)
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	put := map[string]domain.Coordinates{
		"100 Main St": {Lat: 40.7128, Lon: -74.0060},
		"200 Oak Ave": {Lat: 40.7228, Lon: -74.0160},
	}
	if err := c.PutMany(ctx, put); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"100 Main St", "200 Oak Ave", "unknown"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got["100 Main St"] != put["100 Main St"] {
		t.Errorf("entry mismatch: %+v", got["100 Main St"])
	}
	if _, ok := got["unknown"]; ok {
		t.Error("unknown address should be a miss")
	}
}

func TestRedisGeocodeCacheEmptyInputs(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, nil)
	if err != nil {
		t.Fatalf("GetMany(nil): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d entries, want 0", len(got))
	}

	if err := c.PutMany(ctx, nil); err != nil {
		t.Fatalf("PutMany(nil): %v", err)
	}

	if err := c.PutMany(ctx, map[string]domain.Coordinates{" ": {}}); err == nil {
		t.Fatal("expected error for empty address key")
	}
}
