package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-cost-service/internal/domain"
	"route-cost-service/internal/platform/obs"
	"route-cost-service/internal/ports"
	"strings"

	"github.com/shopspring/decimal"
)

var routeColumns = []string{
	"leg",
	"origin_code",
	"dest_code",
	"aircraft_id",
	"provider_id",
	"distance_nm",
	"flight_time",
	"adjusted_flight_time",
	"max_payload",
	"service_type",
	"block_hours_cost",
	"route_fuel_gls",
	"fuel_cost",
	"overflight_fee",
	"overflight_cost",
	"airport_fees_cost",
	"total_flight_cost",
}

// money converts a float cost to the fixed-point value that gets persisted.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// routeArgs flattens a record into insert arguments in routeColumns order.
// Cost fields become 2-place decimals here and nowhere earlier.
func routeArgs(r domain.RouteRecord) []any {
	return []any{
		r.Leg(),
		r.Origin,
		r.Destination,
		r.AircraftID,
		r.ProviderID,
		r.DistanceNM,
		r.FlightTime,
		r.AdjustedFlightTime,
		r.MaxPayload,
		string(r.ServiceType),
		money(r.BlockHoursCost),
		r.FuelGallons,
		money(r.FuelCost),
		money(r.OverflightFee),
		money(r.OverflightCost),
		money(r.AirportFeesCost),
		money(r.TotalCost),
	}
}

type routeStore struct {
	DB      *sql.DB
	dialect dialect
}

// SQLite-backed implementation of the RouteStore port.
type SqliteRouteStore struct{ routeStore }

var (
	_ ports.RouteStore = (*SqliteRouteStore)(nil)
	_ ports.RouteStore = (*SQLRouteStore)(nil)
)

func NewSqliteRouteStore(db *sql.DB) *SqliteRouteStore {
	return &SqliteRouteStore{routeStore{DB: db, dialect: sqliteDialect}}
}

// Postgres-backed implementation of the RouteStore port.
type SQLRouteStore struct{ routeStore }

func NewSQLRouteStore(db *sql.DB) *SQLRouteStore {
	return &SQLRouteStore{routeStore{DB: db, dialect: postgresDialect}}
}

// Return the dedup key of every stored route.
func (s *routeStore) ListRouteKeys(ctx context.Context) (_ map[domain.RouteKey]struct{}, err error) {
	defer obs.Time(ctx, "routes.store.ListRouteKeys")(&err)

	if s.DB == nil {
		return nil, errors.New("route store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT leg, aircraft_id, provider_id FROM routes;`)
	if err != nil {
		return nil, fmt.Errorf("list route keys: query routes table: %w", err)
	}
	defer rows.Close()

	keys := make(map[domain.RouteKey]struct{}, 1024)
	for rows.Next() {
		var k domain.RouteKey
		if err := rows.Scan(&k.Leg, &k.AircraftID, &k.ProviderID); err != nil {
			return nil, fmt.Errorf("list route keys: scan row: %w", err)
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list route keys: row iteration: %w", err)
	}

	return keys, nil
}

// Return the distinct endpoints of stored routes, read from the origin/dest indexes.
func (s *routeStore) ListRoutedAirports(ctx context.Context) (_ map[string]struct{}, err error) {
	defer obs.Time(ctx, "routes.store.ListRoutedAirports")(&err)

	if s.DB == nil {
		return nil, errors.New("route store: DB is nil")
	}

	query := `
	SELECT origin_code FROM routes
	UNION
	SELECT dest_code FROM routes;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routed airports: query routes table: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]struct{}, 64)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("list routed airports: scan row: %w", err)
		}
		codes[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routed airports: row iteration: %w", err)
	}

	return codes, nil
}

// Insert records in batches inside a single transaction.
// A failing batch rolls back every batch before it.
func (s *routeStore) InsertRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (_ int, err error) {
	defer obs.Time(ctx, "routes.store.InsertRoutes")(&err)

	if s.DB == nil {
		return 0, errors.New("route store: DB is nil")
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("insert routes: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := s.insertBatches(ctx, tx, records, batchSize)
	if err != nil {
		return 0, fmt.Errorf("insert routes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert routes commit: %w", err)
	}

	return n, nil
}

// Delete every stored route and insert records, in one transaction.
func (s *routeStore) ReplaceRoutes(ctx context.Context, records []domain.RouteRecord, batchSize int) (_ int, err error) {
	defer obs.Time(ctx, "routes.store.ReplaceRoutes")(&err)

	if s.DB == nil {
		return 0, errors.New("route store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace routes: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routes;`); err != nil {
		return 0, fmt.Errorf("replace routes: delete: %w", err)
	}

	n, err := s.insertBatches(ctx, tx, records, batchSize)
	if err != nil {
		return 0, fmt.Errorf("replace routes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace routes commit: %w", err)
	}

	return n, nil
}

func (s *routeStore) insertBatches(ctx context.Context, tx *sql.Tx, records []domain.RouteRecord, batchSize int) (int, error) {
	batchSize = s.dialect.rowsPerStatement(batchSize, len(routeColumns))

	cols := strings.Join(routeColumns, ", ")
	written := 0

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		args := make([]any, 0, len(batch)*len(routeColumns))
		for _, r := range batch {
			args = append(args, routeArgs(r)...)
		}

		query := "INSERT INTO routes (" + cols + ") VALUES " + s.dialect.values(len(batch), len(routeColumns)) + ";"
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert batch at offset %d (size %d): %w", start, len(batch), err)
		}
		written += len(batch)
	}

	return written, nil
}

// Delete every stored route.
func (s *routeStore) DeleteAllRoutes(ctx context.Context) (_ int, err error) {
	defer obs.Time(ctx, "routes.store.DeleteAllRoutes")(&err)

	if s.DB == nil {
		return 0, errors.New("route store: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM routes;`)
	if err != nil {
		return 0, fmt.Errorf("delete routes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete routes: rows affected: %w", err)
	}

	return int(n), nil
}

// Return the routes stored for one leg, ordered by aircraft then provider.
func (s *routeStore) ListRoutesByLeg(ctx context.Context, leg string) (_ []domain.RouteRecord, err error) {
	defer obs.Time(ctx, "routes.store.ListRoutesByLeg")(&err)

	if s.DB == nil {
		return nil, errors.New("route store: DB is nil")
	}

	query := "SELECT " + strings.Join(routeColumns[1:], ", ") + `
	FROM routes
	WHERE leg = ` + s.dialect.placeholder(1) + `
	ORDER BY aircraft_id, provider_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, leg)
	if err != nil {
		return nil, fmt.Errorf("list routes for leg %q: query routes table: %w", leg, err)
	}
	defer rows.Close()

	routes := make([]domain.RouteRecord, 0, 16)
	for rows.Next() {
		var (
			r           domain.RouteRecord
			serviceType string
			block, fuel decimal.Decimal
			overflight  decimal.Decimal
			overCost    decimal.Decimal
			fees, total decimal.Decimal
		)
		err := rows.Scan(
			&r.Origin,
			&r.Destination,
			&r.AircraftID,
			&r.ProviderID,
			&r.DistanceNM,
			&r.FlightTime,
			&r.AdjustedFlightTime,
			&r.MaxPayload,
			&serviceType,
			&block,
			&r.FuelGallons,
			&fuel,
			&overflight,
			&overCost,
			&fees,
			&total,
		)
		if err != nil {
			return nil, fmt.Errorf("list routes for leg %q: scan row: %w", leg, err)
		}

		r.ServiceType = domain.ServiceType(serviceType)
		r.BlockHoursCost = block.InexactFloat64()
		r.FuelCost = fuel.InexactFloat64()
		r.OverflightFee = overflight.InexactFloat64()
		r.OverflightCost = overCost.InexactFloat64()
		r.AirportFeesCost = fees.InexactFloat64()
		r.TotalCost = total.InexactFloat64()
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes for leg %q: row iteration: %w", leg, err)
	}

	return routes, nil
}
