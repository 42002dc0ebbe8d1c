package domain

// Aircraft holds the performance figures the cost engine needs for one aircraft type.
// A zero CruiseSpeedKt is valid and yields zero flight time on every route.
type Aircraft struct {
	ID            int64
	ShortName     string
	CruiseSpeedKt float64
	MaxPayloadLbs float64
	FuelBurnGal   float64
	MTOWKg        float64
}
