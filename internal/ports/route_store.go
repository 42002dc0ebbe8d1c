package ports

import (
	"context"
	"route-cost-service/internal/domain"
)

const DefaultBatchSize = 1000

// Port: persistence for materialized RouteRecords.
// Implementations must enforce uniqueness of (leg, aircraft id, provider id).
type RouteStore interface {
	// Return the dedup keys of every stored route.
	ListRouteKeys(ctx context.Context) (map[domain.RouteKey]struct{}, error)
	// Return every airport code that is an endpoint of at least one stored route.
	ListRoutedAirports(ctx context.Context) (map[string]struct{}, error)
	// Insert records in batches of batchSize inside one transaction.
	InsertRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (int, error)
	// Delete every route and insert records, all in one transaction.
	ReplaceRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (int, error)
	// Delete every route, returning how many were removed.
	DeleteAllRoutes(ctx context.Context) (int, error)
	// Return the stored routes for one leg ("FROM - TO").
	ListRoutesByLeg(ctx context.Context, leg string) ([]domain.RouteRecord, error)
}
