package services

import (
	"context"
	"fmt"
	"log"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/platform/obs"
	"route-cost-service/internal/ports"
	"slices"
)

// Snapshot is the in-memory view of the catalog and of already-materialized routes
// that a single regeneration run works from.
type Snapshot struct {
	Airports            map[string]domain.Airport
	Aircraft            map[int64]domain.Aircraft
	AircraftIDs         []int64
	ProvidersByAircraft map[int64][]domain.Provider
	ExistingKeys        map[domain.RouteKey]struct{}
	RoutedAirports      map[string]struct{}
}

// AirportCodes returns every catalog airport code in sorted order.
func (s *Snapshot) AirportCodes() []string {
	codes := make([]string, 0, len(s.Airports))
	for code := range s.Airports {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// LoadSnapshot reads the whole catalog and the route index.
//
// Every load must succeed; a partial snapshot is never returned. Providers whose
// service type is neither charter nor acmi are dropped with a warning.
func LoadSnapshot(
	ctx context.Context,
	catalog ports.CatalogRepository,
	routes ports.RouteStore,
) (_ *Snapshot, err error) {
	defer obs.Time(ctx, "routes.LoadSnapshot")(&err)

	airports, err := catalog.ListAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list airports: %w", err)
	}

	aircraft, err := catalog.ListAircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list aircraft: %w", err)
	}

	providers, err := catalog.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list providers: %w", err)
	}

	keys, err := routes.ListRouteKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list route keys: %w", err)
	}

	routed, err := routes.ListRoutedAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list routed airports: %w", err)
	}

	snap := &Snapshot{
		Airports:            make(map[string]domain.Airport, len(airports)),
		Aircraft:            make(map[int64]domain.Aircraft, len(aircraft)),
		AircraftIDs:         make([]int64, 0, len(aircraft)),
		ProvidersByAircraft: make(map[int64][]domain.Provider),
		ExistingKeys:        keys,
		RoutedAirports:      routed,
	}

	for _, a := range airports {
		snap.Airports[a.Code] = a
	}

	for _, ac := range aircraft {
		if _, dup := snap.Aircraft[ac.ID]; !dup {
			snap.AircraftIDs = append(snap.AircraftIDs, ac.ID)
		}
		snap.Aircraft[ac.ID] = ac
	}
	slices.Sort(snap.AircraftIDs)

	skipped := 0
	for _, p := range providers {
		if !p.ServiceType.Valid() {
			log.Printf("load snapshot: skipping provider id=%d name=%q: unsupported service type %q", p.ID, p.Name, p.ServiceType)
			skipped++
			continue
		}
		snap.ProvidersByAircraft[p.AircraftID] = append(snap.ProvidersByAircraft[p.AircraftID], p)
	}
	for id := range snap.ProvidersByAircraft {
		slices.SortFunc(snap.ProvidersByAircraft[id], func(a, b domain.Provider) int {
			if a.ID < b.ID {
				return -1
			}
			if a.ID > b.ID {
				return 1
			}
			return 0
		})
	}

	log.Printf(
		"load snapshot: airports=%d aircraft=%d providers=%d skipped_providers=%d existing_routes=%d",
		len(snap.Airports), len(snap.Aircraft), len(providers)-skipped, skipped, len(snap.ExistingKeys),
	)

	return snap, nil
}
