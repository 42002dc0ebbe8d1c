package handlers

import (
	"log"
	"net/http"
	"route-cost-service/internal/api/dto"
	"route-cost-service/internal/ports"
)

type AirportHandler struct {
	Catalog ports.CatalogRepository
}

// List returns every catalog airport ordered by code.
func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	airports, err := h.Catalog.ListAirports(r.Context())
	if err != nil {
		log.Printf("list airports failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	res := dto.ListAirportsResponse{Airports: make([]dto.AirportResponse, 0, len(airports))}
	for _, a := range airports {
		res.Airports = append(res.Airports, dto.AirportResponse{
			Code:           a.Code,
			Name:           a.Name,
			City:           a.City,
			Country:        a.Country,
			Latitude:       a.Latitude,
			Longitude:      a.Longitude,
			AltitudeFt:     a.AltitudeFt,
			FuelCostPerGal: a.FuelCostPerGal,
			AirportFee:     a.AirportFee,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
