package domain

type ServiceType string

const (
	ServiceCharter ServiceType = "charter"
	ServiceACMI    ServiceType = "acmi"
)

// Valid reports whether the service type takes part in route generation.
func (s ServiceType) Valid() bool {
	return s == ServiceCharter || s == ServiceACMI
}

// Provider sells block hours on exactly one aircraft type.
type Provider struct {
	ID            int64
	Name          string
	AircraftID    int64
	BlockHourRate float64
	ServiceType   ServiceType
}
