package domain

// Airport is a catalog snapshot of a single airport, identified by its 3-letter code.
// Coordinates and altitude are optional: an airport without coordinates takes no part
// in distance computation, and one without altitude is never derated.
type Airport struct {
	Code           string
	Name           string
	City           string
	Country        string
	Latitude       *float64
	Longitude      *float64
	AltitudeFt     *int
	FuelCostPerGal float64
	AirportFee     float64
}

// Position returns the airport coordinates when both latitude and longitude are known.
func (a Airport) Position() (Coordinates, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lon: *a.Longitude, Lat: *a.Latitude}, true
}
