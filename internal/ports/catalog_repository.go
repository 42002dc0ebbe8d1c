package ports

import (
	"context"
	"route-cost-service/internal/domain"
)

// Port: read-only access to the airport/aircraft/provider catalog.
// The catalog is owned elsewhere; the route engine only snapshots it.
type CatalogRepository interface {
	// Retrieve every airport, ordered by code.
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	// Retrieve every aircraft type, ordered by id.
	ListAircraft(ctx context.Context) ([]domain.Aircraft, error)
	// Retrieve every provider regardless of service type, ordered by id.
	ListProviders(ctx context.Context) ([]domain.Provider, error)
	// Point lookup by airport code. Returns found=false when the code is unknown.
	GetAirport(ctx context.Context, code string) (domain.Airport, bool, error)
}
