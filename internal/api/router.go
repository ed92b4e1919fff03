package api

import (
	"net/http"

	"trip-match-service/internal/api/handlers"
	"trip-match-service/internal/domain"
	"trip-match-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(geocoder ports.Geocoder, defaults domain.Thresholds) http.Handler {
	mux := http.NewServeMux()

	cmpHandler := &handlers.ComparisonHandler{
		Geocoder:          geocoder,
		DefaultThresholds: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/comparisons", cmpHandler.Compare)

	return requestIDMiddleware(loggingMiddleware(mux))
}
