package repositories

import (
	"database/sql"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

const testSeedJSON = `{
	"airports": [
		{"code": "jfk", "name": "John F Kennedy", "city": "New York", "country": "USA",
		 "latitude": 40.6413, "longitude": -73.7781, "altitude_ft": 13, "fuel_cost_gl": 6, "airport_fee": 2},
		{"code": "LHR", "name": "Heathrow", "city": "London", "country": "UK",
		 "latitude": 51.47, "longitude": -0.4543, "altitude_ft": 83, "fuel_cost_gl": 7.5, "airport_fee": 3},
		{"code": "BOG", "name": "El Dorado", "city": "Bogota", "country": "Colombia",
		 "latitude": 4.7016, "longitude": -74.1469, "altitude_ft": 8361, "fuel_cost_gl": 5.2, "airport_fee": 1.1},
		{"code": "NOC", "name": "Unsurveyed", "city": "Nowhere", "country": "N/A", "fuel_cost_gl": 0, "airport_fee": 0}
	],
	"aircraft": [
		{"id": 1, "short_name": "B763F", "cruise_speed": 450, "max_payload_lbs": 100000, "fuel_burn_gal": 2000, "mtow_kg": 300000}
	],
	"providers": [
		{"id": 10, "name": "Atlas", "aircraft_id": 1, "block_hour_cost": 5000, "type": "ACMI"},
		{"id": 11, "name": "Skyways", "aircraft_id": 1, "block_hour_cost": 9000, "type": "charter"},
		{"id": 12, "name": "Legacy", "aircraft_id": 1, "block_hour_cost": 7000, "type": "wet-lease"}
	]
}`

func seedTestCatalog(t *testing.T, conn *sql.DB) {
	t.Helper()
	seed, err := ParseCatalogSeed([]byte(testSeedJSON))
	require.NoError(t, err)
	require.NoError(t, writeCatalogSeed(conn, sqliteDialect, seed))
}

func testRoute(from, to string, providerID int64) domain.RouteRecord {
	return domain.RouteRecord{
		Origin:             from,
		Destination:        to,
		DistanceNM:         2999.12,
		AircraftID:         1,
		ProviderID:         providerID,
		FlightTime:         6.66,
		AdjustedFlightTime: 7,
		MaxPayload:         100000,
		ServiceType:        domain.ServiceACMI,
		BlockHoursCost:     35000,
		FuelGallons:        14000,
		FuelCost:           84000,
		OverflightFee:      0.3,
		OverflightCost:     899.736,
		AirportFeesCost:    600000,
		TotalCost:          719899.736,
	}
}
