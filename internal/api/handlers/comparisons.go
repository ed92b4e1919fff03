package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"trip-match-service/internal/api/dto"
	"trip-match-service/internal/domain"
	"trip-match-service/internal/ports"
	"trip-match-service/internal/services"
)

// Threshold overrides outside this range are rejected at the API boundary.
const maxThresholdKm = 100.0

type ComparisonHandler struct {
	Geocoder          ports.Geocoder
	DefaultThresholds domain.Thresholds
}

// Compare geocodes the four addresses of two delivery orders and reports
// whether the orders are close enough to run as one combined trip.
// All input errors are detected before or at the geocoding step; no partial
// results are returned.
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ComparisonRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.RouteA.Pickup) == "" ||
		strings.TrimSpace(req.RouteA.Dropoff) == "" ||
		strings.TrimSpace(req.RouteB.Pickup) == "" ||
		strings.TrimSpace(req.RouteB.Dropoff) == "" {
		writeError(w, r, http.StatusBadRequest, "all four addresses are required")
		return
	}

	thresholds, err := resolveThresholds(req, h.DefaultThresholds)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.CompareTripsRequest{
		RouteA:     services.AddressPair{Pickup: req.RouteA.Pickup, Dropoff: req.RouteA.Dropoff},
		RouteB:     services.AddressPair{Pickup: req.RouteB.Pickup, Dropoff: req.RouteB.Dropoff},
		Thresholds: thresholds,
	}

	result, err := services.CompareTrips(r.Context(), svcReq, h.Geocoder)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingAddress):
			writeError(w, r, http.StatusBadRequest, "all four addresses are required")
		case errors.Is(err, ports.ErrAddressNotFound):
			writeError(w, r, http.StatusUnprocessableEntity, "address not found")
		default:
			log.Printf("compare trips failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	res := dto.ComparisonResponse{
		PickupDistanceKm:  result.PickupDistanceKm,
		DropoffDistanceKm: result.DropoffDistanceKm,
		RouteALengthKm:    result.RouteALengthKm,
		RouteBLengthKm:    result.RouteBLengthKm,
		Combinable:        result.Combinable,
		Verdict:           string(result.Verdict),
		Reasons:           result.Reasons,
	}

	writeJSON(w, r, http.StatusOK, res)
}

func resolveThresholds(req dto.ComparisonRequest, defaults domain.Thresholds) (domain.Thresholds, error) {
	t := defaults

	if req.ThresholdKm != nil {
		if err := validThreshold("threshold_km", *req.ThresholdKm); err != nil {
			return domain.Thresholds{}, err
		}
		t.PickupKm = *req.ThresholdKm
		t.DropoffKm = *req.ThresholdKm
	}
	if req.PickupThresholdKm != nil {
		if err := validThreshold("pickup_threshold_km", *req.PickupThresholdKm); err != nil {
			return domain.Thresholds{}, err
		}
		t.PickupKm = *req.PickupThresholdKm
	}
	if req.DropoffThresholdKm != nil {
		if err := validThreshold("dropoff_threshold_km", *req.DropoffThresholdKm); err != nil {
			return domain.Thresholds{}, err
		}
		t.DropoffKm = *req.DropoffThresholdKm
	}

	return t, nil
}

func validThreshold(field string, v float64) error {
	if v <= 0 || v > maxThresholdKm {
		return fmt.Errorf("%s must be greater than 0 and at most %v", field, maxThresholdKm)
	}
	return nil
}
