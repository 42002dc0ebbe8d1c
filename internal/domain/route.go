package domain

import (
	"strconv"
	"strings"
)

// Leg returns the "FROM - TO" identifier of an ordered airport pair.
func Leg(from, to string) string {
	return from + " - " + to
}

// SplitLeg is the inverse of Leg.
func SplitLeg(leg string) (from, to string, ok bool) {
	from, to, ok = strings.Cut(leg, " - ")
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

// RouteKey is the deduplication identity of a materialized route.
type RouteKey struct {
	Leg        string
	AircraftID int64
	ProviderID int64
}

// String renders the key as "FROM - TO|aircraftId|providerId".
func (k RouteKey) String() string {
	return k.Leg + "|" + strconv.FormatInt(k.AircraftID, 10) + "|" + strconv.FormatInt(k.ProviderID, 10)
}

// AirportPair is an ordered (origin, destination) pair of airport codes.
type AirportPair struct {
	From string
	To   string
}

func (p AirportPair) Leg() string { return Leg(p.From, p.To) }

// RouteRecord is the fully priced result for one (leg, aircraft, provider) combination.
// Records are immutable once written; a full regeneration replaces them wholesale.
type RouteRecord struct {
	Origin             string
	Destination        string
	DistanceNM         float64
	AircraftID         int64
	ProviderID         int64
	FlightTime         float64
	AdjustedFlightTime float64
	MaxPayload         float64
	ServiceType        ServiceType
	BlockHoursCost     float64
	FuelGallons        float64
	FuelCost           float64
	OverflightFee      float64
	OverflightCost     float64
	AirportFeesCost    float64
	TotalCost          float64
}

func (r RouteRecord) Leg() string { return Leg(r.Origin, r.Destination) }

func (r RouteRecord) Key() RouteKey {
	return RouteKey{Leg: r.Leg(), AircraftID: r.AircraftID, ProviderID: r.ProviderID}
}
