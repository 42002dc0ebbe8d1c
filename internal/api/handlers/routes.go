package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
	"strings"
)

type RouteHandler struct {
	Catalog ports.CatalogRepository
	Routes  ports.RouteStore
	Engine  ports.RouteRegenerator
}

// Lookup returns the priced routes for one leg, generating them first when none are stored.
func (h *RouteHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteLookupRequest
	if err := decodeBody(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	dep := strings.ToUpper(strings.TrimSpace(req.Departure))
	arr := strings.ToUpper(strings.TrimSpace(req.Arrival))
	if dep == "" || arr == "" {
		writeError(w, r, http.StatusBadRequest, "departure and arrival are required")
		return
	}
	if dep == arr {
		writeError(w, r, http.StatusBadRequest, "departure and arrival must differ")
		return
	}

	ctx := r.Context()
	for _, code := range []string{dep, arr} {
		_, found, err := h.Catalog.GetAirport(ctx, code)
		if err != nil {
			log.Printf("route lookup: get airport %s failed: %v", code, err)
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		if !found {
			writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown airport %q", code))
			return
		}
	}

	leg := domain.Leg(dep, arr)
	records, err := h.Routes.ListRoutesByLeg(ctx, leg)
	if err != nil {
		log.Printf("route lookup: list leg %q failed: %v", leg, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	generated := 0
	if len(records) == 0 {
		generated, err = h.Engine.RegenerateForAirportPair(ctx, dep, arr)
		if err != nil {
			log.Printf("route lookup: regenerate leg %q failed: %v", leg, err)
			writeError(w, r, http.StatusInternalServerError, "route generation failed")
			return
		}
		if generated > 0 {
			records, err = h.Routes.ListRoutesByLeg(ctx, leg)
			if err != nil {
				log.Printf("route lookup: reread leg %q failed: %v", leg, err)
				writeError(w, r, http.StatusInternalServerError, "internal error")
				return
			}
		}
	}

	res := dto.RouteLookupResponse{
		Leg:       leg,
		Generated: generated,
		Routes:    make([]dto.RouteResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Routes = append(res.Routes, toRouteResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Regenerate runs a full or incremental regeneration synchronously.
func (h *RouteHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	// An empty body selects the default mode.
	var req dto.RegenerateRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, r, err)
		return
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = "incremental"
	}

	var (
		n   int
		err error
	)
	switch mode {
	case "all":
		n, err = h.Engine.RegenerateAll(r.Context())
	case "incremental":
		n, err = h.Engine.RegenerateIncremental(r.Context())
	default:
		writeError(w, r, http.StatusBadRequest, `mode must be "all" or "incremental"`)
		return
	}
	if err != nil {
		log.Printf("regenerate %s failed: %v", mode, err)
		writeError(w, r, http.StatusInternalServerError, "route generation failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RegenerateResponse{Mode: mode, Created: n})
}

// DeleteAll removes every stored route.
func (h *RouteHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.Routes.DeleteAllRoutes(r.Context())
	if err != nil {
		log.Printf("delete routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteRoutesResponse{Deleted: n})
}

func toRouteResponse(rec domain.RouteRecord) dto.RouteResponse {
	return dto.RouteResponse{
		Leg:                rec.Leg(),
		DistanceNM:         rec.DistanceNM,
		AircraftID:         rec.AircraftID,
		ProviderID:         rec.ProviderID,
		ServiceType:        string(rec.ServiceType),
		FlightTime:         rec.FlightTime,
		AdjustedFlightTime: rec.AdjustedFlightTime,
		MaxPayload:         rec.MaxPayload,
		BlockHoursCost:     rec.BlockHoursCost,
		FuelGallons:        rec.FuelGallons,
		FuelCost:           rec.FuelCost,
		OverflightFee:      rec.OverflightFee,
		OverflightCost:     rec.OverflightCost,
		AirportFeesCost:    rec.AirportFeesCost,
		TotalCost:          rec.TotalCost,
	}
}
