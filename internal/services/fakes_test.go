package services

import (
	"context"
	"fmt"
	"route-cost-service/internal/domain"
	"slices"
)

type fakeCatalog struct {
	airports  []domain.Airport
	aircraft  []domain.Aircraft
	providers []domain.Provider
	err       error
}

func (f *fakeCatalog) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return f.airports, f.err
}

func (f *fakeCatalog) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	return f.aircraft, f.err
}

func (f *fakeCatalog) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return f.providers, f.err
}

func (f *fakeCatalog) GetAirport(ctx context.Context, code string) (domain.Airport, bool, error) {
	if f.err != nil {
		return domain.Airport{}, false, f.err
	}
	for _, a := range f.airports {
		if a.Code == code {
			return a, true, nil
		}
	}
	return domain.Airport{}, false, nil
}

// memRouteStore mimics a store with a unique (leg, aircraft, provider) constraint
// and all-or-nothing writes.
type memRouteStore struct {
	routes    map[domain.RouteKey]domain.RouteRecord
	writes    int
	failWrite error
}

func newMemRouteStore() *memRouteStore {
	return &memRouteStore{routes: map[domain.RouteKey]domain.RouteRecord{}}
}

func (m *memRouteStore) ListRouteKeys(ctx context.Context) (map[domain.RouteKey]struct{}, error) {
	out := make(map[domain.RouteKey]struct{}, len(m.routes))
	for k := range m.routes {
		out[k] = struct{}{}
	}
	return out, nil
}

func (m *memRouteStore) ListRoutedAirports(ctx context.Context) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for _, r := range m.routes {
		out[r.Origin] = struct{}{}
		out[r.Destination] = struct{}{}
	}
	return out, nil
}

func (m *memRouteStore) InsertRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (int, error) {
	m.writes++
	if m.failWrite != nil {
		return 0, m.failWrite
	}
	staged := make(map[domain.RouteKey]domain.RouteRecord, len(records))
	for _, r := range records {
		k := r.Key()
		if _, ok := m.routes[k]; ok {
			return 0, fmt.Errorf("duplicate route %s", k)
		}
		if _, ok := staged[k]; ok {
			return 0, fmt.Errorf("duplicate route %s", k)
		}
		staged[k] = r
	}
	for k, r := range staged {
		m.routes[k] = r
	}
	return len(staged), nil
}

func (m *memRouteStore) ReplaceRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (int, error) {
	if m.failWrite != nil {
		m.writes++
		return 0, m.failWrite
	}
	old := m.routes
	m.routes = map[domain.RouteKey]domain.RouteRecord{}
	n, err := m.InsertRoutes(ctx, records, batchSize)
	if err != nil {
		m.routes = old
		return 0, err
	}
	return n, nil
}

func (m *memRouteStore) DeleteAllRoutes(ctx context.Context) (int, error) {
	n := len(m.routes)
	m.routes = map[domain.RouteKey]domain.RouteRecord{}
	return n, nil
}

func (m *memRouteStore) ListRoutesByLeg(ctx context.Context, leg string) ([]domain.RouteRecord, error) {
	out := []domain.RouteRecord{}
	for _, r := range m.routes {
		if r.Leg() == leg {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRouteStore) legs() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range m.routes {
		if _, ok := seen[r.Leg()]; ok {
			continue
		}
		seen[r.Leg()] = struct{}{}
		out = append(out, r.Leg())
	}
	slices.Sort(out)
	return out
}

func ptr[T any](v T) *T { return &v }

func airportAt(code string, lat, lon float64) domain.Airport {
	return domain.Airport{Code: code, Latitude: ptr(lat), Longitude: ptr(lon), FuelCostPerGal: 6, AirportFee: 2}
}
