package repositories

import (
	"bytes"
	"context"
	"log"
	"os"
	"route-cost-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteStoreInsertInBatches(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	records := []domain.RouteRecord{
		testRoute("JFK", "LHR", 10),
		testRoute("JFK", "LHR", 11),
		testRoute("LHR", "JFK", 10),
	}

	n, err := store.InsertRoutes(ctx, records, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	keys, err := store.ListRouteKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, domain.RouteKey{Leg: "JFK - LHR", AircraftID: 1, ProviderID: 11})

	routed, err := store.ListRoutedAirports(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"JFK": {}, "LHR": {}}, routed)
}

func TestRouteStoreRoundsMoneyAtPersistence(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	_, err := store.InsertRoutes(ctx, []domain.RouteRecord{testRoute("JFK", "LHR", 10)}, 0)
	require.NoError(t, err)

	routes, err := store.ListRoutesByLeg(ctx, "JFK - LHR")
	require.NoError(t, err)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, "JFK", r.Origin)
	assert.Equal(t, "LHR", r.Destination)
	assert.Equal(t, domain.ServiceACMI, r.ServiceType)
	assert.Equal(t, 2999.12, r.DistanceNM)
	assert.Equal(t, 899.74, r.OverflightCost)
	assert.Equal(t, 719899.74, r.TotalCost)
	assert.Equal(t, 0.3, r.OverflightFee)
	assert.Equal(t, 35000.0, r.BlockHoursCost)

	empty, err := store.ListRoutesByLeg(ctx, "LHR - JFK")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRouteStoreDuplicateKeyRollsBackWholeCall(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	_, err := store.InsertRoutes(ctx, []domain.RouteRecord{testRoute("JFK", "LHR", 10)}, 1)
	require.NoError(t, err)

	// The first batch succeeds on its own; the second collides and must undo it.
	_, err = store.InsertRoutes(ctx, []domain.RouteRecord{
		testRoute("LHR", "JFK", 10),
		testRoute("JFK", "LHR", 10),
	}, 1)
	require.Error(t, err)

	keys, err := store.ListRouteKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestRouteStoreRejectsSelfPair(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)

	_, err := store.InsertRoutes(context.Background(), []domain.RouteRecord{testRoute("JFK", "JFK", 10)}, 10)
	assert.Error(t, err)
}

func TestRouteStoreReplaceRoutes(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	_, err := store.InsertRoutes(ctx, []domain.RouteRecord{
		testRoute("JFK", "LHR", 10),
		testRoute("LHR", "JFK", 10),
	}, 10)
	require.NoError(t, err)

	n, err := store.ReplaceRoutes(ctx, []domain.RouteRecord{testRoute("JFK", "LHR", 10), testRoute("BOG", "JFK", 11)}, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := store.ListRouteKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.RouteKey]struct{}{
		{Leg: "JFK - LHR", AircraftID: 1, ProviderID: 10}: {},
		{Leg: "BOG - JFK", AircraftID: 1, ProviderID: 11}: {},
	}, keys)

	// A failing replace leaves the previous routes untouched.
	_, err = store.ReplaceRoutes(ctx, []domain.RouteRecord{testRoute("LHR", "JFK", 10), testRoute("LHR", "JFK", 10)}, 10)
	require.Error(t, err)

	keys, err = store.ListRouteKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestRouteStoreDeleteAllRoutes(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	_, err := store.InsertRoutes(ctx, []domain.RouteRecord{testRoute("JFK", "LHR", 10), testRoute("LHR", "JFK", 10)}, 10)
	require.NoError(t, err)

	n, err := store.DeleteAllRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	routed, err := store.ListRoutedAirports(ctx)
	require.NoError(t, err)
	assert.Empty(t, routed)
}

func TestRouteStoreBatchLargerThanParameterLimit(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	var extra CatalogSeed
	for i := 0; i < 46; i++ {
		code := string([]byte{'Q', byte('A' + i/26), byte('A' + i%26)})
		extra.Airports = append(extra.Airports, AirportSeed{Code: code, Name: code})
	}
	require.NoError(t, writeCatalogSeed(conn, sqliteDialect, extra))

	records := make([]domain.RouteRecord, 0, 46*45)
	for _, from := range extra.Airports {
		for _, to := range extra.Airports {
			if from.Code == to.Code {
				continue
			}
			records = append(records, testRoute(from.Code, to.Code, 10))
		}
	}
	require.Greater(t, len(records)*len(routeColumns), sqliteDialect.maxParams)

	n, err := store.InsertRoutes(ctx, records, 5000)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	n, err = store.ReplaceRoutes(ctx, records, 5000)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	keys, err := store.ListRouteKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, len(records))
}

func TestRouteStoreListRoutesByLegOrderAndTiming(t *testing.T) {
	conn := setupTestDB(t)
	seedTestCatalog(t, conn)
	store := NewSqliteRouteStore(conn)
	ctx := context.Background()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	_, err := store.InsertRoutes(ctx, []domain.RouteRecord{testRoute("JFK", "LHR", 12), testRoute("JFK", "LHR", 10), testRoute("JFK", "LHR", 11)}, 10)
	require.NoError(t, err)

	routes, err := store.ListRoutesByLeg(ctx, "JFK - LHR")
	require.NoError(t, err)
	require.Len(t, routes, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{routes[0].ProviderID, routes[1].ProviderID, routes[2].ProviderID})

	_, err = store.ListRoutedAirports(ctx)
	require.NoError(t, err)
	_, err = store.DeleteAllRoutes(ctx)
	require.NoError(t, err)

	out := buf.String()
	for _, op := range []string{"ListRoutesByLeg", "ListRoutedAirports", "DeleteAllRoutes"} {
		assert.Contains(t, out, "op=routes.store."+op)
	}
}
