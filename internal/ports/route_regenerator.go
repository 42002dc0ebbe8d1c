package ports

import "context"

// Port: the route generation entry points, invoked after catalog changes.
// Each returns the number of route records created.
type RouteRegenerator interface {
	RegenerateAll(ctx context.Context) (int, error)
	RegenerateIncremental(ctx context.Context) (int, error)
	RegenerateForAirportPair(ctx context.Context, originCode, destCode string) (int, error)
}
