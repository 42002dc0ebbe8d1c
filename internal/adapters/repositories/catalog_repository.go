package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-cost-service/internal/domain"
)

type catalogRepository struct {
	DB      *sql.DB
	dialect dialect
}

// SQLite-backed implementation of the CatalogRepository port.
type SqliteCatalogRepository struct{ catalogRepository }

func NewSqliteCatalogRepository(db *sql.DB) *SqliteCatalogRepository {
	return &SqliteCatalogRepository{catalogRepository{DB: db, dialect: sqliteDialect}}
}

// Postgres-backed implementation of the CatalogRepository port.
type SQLCatalogRepository struct{ catalogRepository }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{catalogRepository{DB: db, dialect: postgresDialect}}
}

const airportColumns = `
		code,
		name,
		city,
		country,
		latitude,
		longitude,
		altitude_ft,
		fuel_cost_gl,
		airport_fee`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAirport(row rowScanner) (domain.Airport, error) {
	var (
		a        domain.Airport
		lat, lon sql.NullFloat64
		alt      sql.NullInt64
	)
	if err := row.Scan(&a.Code, &a.Name, &a.City, &a.Country, &lat, &lon, &alt, &a.FuelCostPerGal, &a.AirportFee); err != nil {
		return domain.Airport{}, err
	}

	if lat.Valid {
		a.Latitude = &lat.Float64
	}
	if lon.Valid {
		a.Longitude = &lon.Float64
	}
	if alt.Valid {
		ft := int(alt.Int64)
		a.AltitudeFt = &ft
	}

	return a, nil
}

// Return all airports ordered by code.
func (s *catalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `SELECT` + airportColumns + `
	FROM airports
	ORDER BY code;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list airports: query airports table: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0, 64)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, fmt.Errorf("list airports: scan row: %w", err)
		}
		airports = append(airports, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airports: row iteration: %w", err)
	}

	return airports, nil
}

// Look up a single airport by code.
func (s *catalogRepository) GetAirport(ctx context.Context, code string) (domain.Airport, bool, error) {
	if s.DB == nil {
		return domain.Airport{}, false, errors.New("catalog repository: DB is nil")
	}

	query := `SELECT` + airportColumns + `
	FROM airports
	WHERE code = ` + s.dialect.placeholder(1) + `;
	`
	a, err := scanAirport(s.DB.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Airport{}, false, nil
	}
	if err != nil {
		return domain.Airport{}, false, fmt.Errorf("get airport %q: %w", code, err)
	}

	return a, true, nil
}

// Return all aircraft ordered by id.
func (s *catalogRepository) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `
	SELECT
		aircraft_id,
		short_name,
		cruise_speed,
		max_payload_lbs,
		fuel_burn_gal,
		mtow_kg
	FROM aircraft
	ORDER BY aircraft_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: query aircraft table: %w", err)
	}
	defer rows.Close()

	aircraft := make([]domain.Aircraft, 0, 16)
	for rows.Next() {
		var ac domain.Aircraft
		if err := rows.Scan(&ac.ID, &ac.ShortName, &ac.CruiseSpeedKt, &ac.MaxPayloadLbs, &ac.FuelBurnGal, &ac.MTOWKg); err != nil {
			return nil, fmt.Errorf("list aircraft: scan row: %w", err)
		}
		aircraft = append(aircraft, ac)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list aircraft: row iteration: %w", err)
	}

	return aircraft, nil
}

// Return all providers ordered by id, including those with unsupported service types.
func (s *catalogRepository) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `
	SELECT
		provider_id,
		name,
		aircraft_id,
		block_hour_cost,
		service_type
	FROM providers
	ORDER BY provider_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list providers: query providers table: %w", err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0, 32)
	for rows.Next() {
		var (
			p           domain.Provider
			serviceType string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.AircraftID, &p.BlockHourRate, &serviceType); err != nil {
			return nil, fmt.Errorf("list providers: scan row: %w", err)
		}
		p.ServiceType = domain.ServiceType(serviceType)
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list providers: row iteration: %w", err)
	}

	return providers, nil
}
