package dto

type AirportResponse struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AltitudeFt     *int     `json:"altitude_ft"`
	FuelCostPerGal float64  `json:"fuel_cost_per_gal"`
	AirportFee     float64  `json:"airport_fee"`
}

type ListAirportsResponse struct {
	Airports []AirportResponse `json:"airports"`
}
