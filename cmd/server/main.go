package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-match-service/internal/adapters/cache"
	"trip-match-service/internal/adapters/geocode"
	"trip-match-service/internal/api"
	"trip-match-service/internal/domain"
	"trip-match-service/internal/platform/db"
	"trip-match-service/internal/ports"
)

// main is the application composition root.
// It wires a geocode cache backend and the ORS geocoder behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	thresholds, err := thresholdsFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	geocodeCache, closeCache, err := openGeocodeCache()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	geocoder, err := geocode.NewORSGeocoder(orsKey, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(geocoder, thresholds)

	// Timeouts are tuned for cold-cache geocoding (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func thresholdsFromEnv() (domain.Thresholds, error) {
	t := domain.DefaultThresholds()

	if v := os.Getenv("PICKUP_THRESHOLD_KM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return domain.Thresholds{}, fmt.Errorf("invalid PICKUP_THRESHOLD_KM: %q", v)
		}
		t.PickupKm = f
	}
	if v := os.Getenv("DROPOFF_THRESHOLD_KM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return domain.Thresholds{}, fmt.Errorf("invalid DROPOFF_THRESHOLD_KM: %q", v)
		}
		t.DropoffKm = f
	}

	return t, nil
}

// openGeocodeCache selects the persistent cache backend from CACHE_BACKEND:
// sqlite (default), postgres, or redis.
func openGeocodeCache() (ports.GeocodeCache, func(), error) {
	backend := getEnv("CACHE_BACKEND", "sqlite")

	switch backend {
	case "sqlite":
		dbPath := getEnv("DB_PATH", "data/app.db")
		conn, err := openSqlite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSqliteGeocodeCache(conn), func() { conn.Close() }, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for CACHE_BACKEND=postgres")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewSQLGeocodeCache(conn), func() { conn.Close() }, nil

	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisGeocodeCache(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
