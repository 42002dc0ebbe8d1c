package dto

type RouteLookupRequest struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

type RouteResponse struct {
	Leg                string  `json:"leg"`
	DistanceNM         float64 `json:"distance_nm"`
	AircraftID         int64   `json:"aircraft_id"`
	ProviderID         int64   `json:"provider_id"`
	ServiceType        string  `json:"service_type"`
	FlightTime         float64 `json:"flight_time"`
	AdjustedFlightTime float64 `json:"adjusted_flight_time"`
	MaxPayload         float64 `json:"max_payload"`
	BlockHoursCost     float64 `json:"block_hours_cost"`
	FuelGallons        float64 `json:"fuel_gallons"`
	FuelCost           float64 `json:"fuel_cost"`
	OverflightFee      float64 `json:"overflight_fee"`
	OverflightCost     float64 `json:"overflight_cost"`
	AirportFeesCost    float64 `json:"airport_fees_cost"`
	TotalCost          float64 `json:"total_cost"`
}

type RouteLookupResponse struct {
	Leg       string          `json:"leg"`
	Generated int             `json:"generated"`
	Routes    []RouteResponse `json:"routes"`
}

type RegenerateRequest struct {
	Mode string `json:"mode"`
}

type RegenerateResponse struct {
	Mode    string `json:"mode"`
	Created int    `json:"created"`
}

type DeleteRoutesResponse struct {
	Deleted int `json:"deleted"`
}
