package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-cost-service/internal/platform/obs"
	"route-cost-service/internal/ports"
	"strings"
)

// RouteEngine regenerates priced routes from the catalog.
//
// It holds no state between calls: every entry point loads a fresh snapshot,
// computes in memory, and writes the result in one store transaction. Callers
// are expected to invoke one entry point synchronously after each catalog change.
type RouteEngine struct {
	Catalog   ports.CatalogRepository
	Routes    ports.RouteStore
	BatchSize int
}

var _ ports.RouteRegenerator = (*RouteEngine)(nil)

func NewRouteEngine(catalog ports.CatalogRepository, routes ports.RouteStore, batchSize int) (*RouteEngine, error) {
	if catalog == nil {
		return nil, errors.New("new route engine: catalog must not be nil")
	}
	if routes == nil {
		return nil, errors.New("new route engine: route store must not be nil")
	}
	if batchSize <= 0 {
		batchSize = ports.DefaultBatchSize
	}

	return &RouteEngine{Catalog: catalog, Routes: routes, BatchSize: batchSize}, nil
}

func (e *RouteEngine) batchSize() int {
	if e.BatchSize <= 0 {
		return ports.DefaultBatchSize
	}
	return e.BatchSize
}

// RegenerateAll deletes every route and recomputes the whole route space.
// The delete and the inserts share one transaction, so a failure leaves the old routes intact.
func (e *RouteEngine) RegenerateAll(ctx context.Context) (_ int, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "routes.RegenerateAll")(&err)

	snap, err := LoadSnapshot(ctx, e.Catalog, e.Routes)
	if err != nil {
		return 0, fmt.Errorf("regenerate all: %w", err)
	}

	distances := NewDistanceCache(snap.Airports)
	records := EnumerateRoutes(snap, distances, AllPairs(distances), nil)

	n, err := e.Routes.ReplaceRoutes(ctx, records, e.batchSize())
	if err != nil {
		return 0, fmt.Errorf("regenerate all: replace routes: %w", err)
	}

	log.Printf("regenerate all: pairs=%d created=%d", distances.Len(), n)
	return n, nil
}

// RegenerateIncremental computes only the combinations that have no stored route yet.
func (e *RouteEngine) RegenerateIncremental(ctx context.Context) (_ int, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "routes.RegenerateIncremental")(&err)

	snap, err := LoadSnapshot(ctx, e.Catalog, e.Routes)
	if err != nil {
		return 0, fmt.Errorf("regenerate incremental: %w", err)
	}

	distances := NewDistanceCache(snap.Airports)
	records := EnumerateRoutes(snap, distances, AllPairs(distances), snap.ExistingKeys)
	if len(records) == 0 {
		return 0, nil
	}

	n, err := e.Routes.InsertRoutes(ctx, records, e.batchSize())
	if err != nil {
		return 0, fmt.Errorf("regenerate incremental: insert routes: %w", err)
	}

	log.Printf("regenerate incremental: created=%d", n)
	return n, nil
}

// RegenerateForAirportPair computes routes around a requested leg.
//
// When either airport has no stored route yet, every pair touching that airport is
// computed; otherwise only the requested leg is. Unknown airport codes and self
// pairs produce nothing.
func (e *RouteEngine) RegenerateForAirportPair(ctx context.Context, originCode, destCode string) (_ int, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "routes.RegenerateForAirportPair")(&err)

	origin := NormalizeCode(originCode)
	dest := NormalizeCode(destCode)
	if origin == "" || dest == "" || origin == dest {
		return 0, nil
	}

	for _, code := range []string{origin, dest} {
		_, found, err := e.Catalog.GetAirport(ctx, code)
		if err != nil {
			return 0, fmt.Errorf("regenerate pair %s: get airport %q: %w", origin+" - "+dest, code, err)
		}
		if !found {
			log.Printf("regenerate pair: unknown airport code=%s", code)
			return 0, nil
		}
	}

	snap, err := LoadSnapshot(ctx, e.Catalog, e.Routes)
	if err != nil {
		return 0, fmt.Errorf("regenerate pair %s: %w", origin+" - "+dest, err)
	}

	pairs := LocalizedPairs(origin, dest, snap.AirportCodes(), snap.RoutedAirports)
	distances := NewPairDistanceCache(snap.Airports, pairs)
	records := EnumerateRoutes(snap, distances, pairs, snap.ExistingKeys)
	if len(records) == 0 {
		return 0, nil
	}

	n, err := e.Routes.InsertRoutes(ctx, records, e.batchSize())
	if err != nil {
		return 0, fmt.Errorf("regenerate pair %s: insert routes: %w", origin+" - "+dest, err)
	}

	log.Printf("regenerate pair: leg=%q pairs=%d created=%d", origin+" - "+dest, len(pairs), n)
	return n, nil
}

// NormalizeCode upper-cases and trims an airport code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
