package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Money columns are TEXT in SQLite so decimals round-trip exactly.
var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS airports (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		latitude REAL,
		longitude REAL,
		altitude_ft INTEGER,
		fuel_cost_gl REAL NOT NULL DEFAULT 0,
		airport_fee REAL NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS aircraft (
		aircraft_id INTEGER PRIMARY KEY,
		short_name TEXT NOT NULL DEFAULT '',
		cruise_speed REAL NOT NULL DEFAULT 0,
		max_payload_lbs REAL NOT NULL DEFAULT 0,
		fuel_burn_gal REAL NOT NULL DEFAULT 0,
		mtow_kg REAL NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS providers (
		provider_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		aircraft_id INTEGER NOT NULL REFERENCES aircraft(aircraft_id) ON DELETE CASCADE,
		block_hour_cost REAL NOT NULL DEFAULT 0,
		service_type TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS routes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		leg TEXT NOT NULL,
		origin_code TEXT NOT NULL REFERENCES airports(code) ON DELETE CASCADE,
		dest_code TEXT NOT NULL REFERENCES airports(code) ON DELETE CASCADE,
		aircraft_id INTEGER NOT NULL REFERENCES aircraft(aircraft_id) ON DELETE CASCADE,
		provider_id INTEGER NOT NULL REFERENCES providers(provider_id) ON DELETE CASCADE,
		distance_nm REAL NOT NULL,
		flight_time REAL NOT NULL,
		adjusted_flight_time REAL NOT NULL,
		max_payload REAL NOT NULL,
		service_type TEXT NOT NULL,
		block_hours_cost TEXT NOT NULL,
		route_fuel_gls REAL NOT NULL,
		fuel_cost TEXT NOT NULL,
		overflight_fee TEXT NOT NULL,
		overflight_cost TEXT NOT NULL,
		airport_fees_cost TEXT NOT NULL,
		total_flight_cost TEXT NOT NULL,
		UNIQUE (leg, aircraft_id, provider_id),
		CHECK (origin_code <> dest_code)
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_routes_origin_code ON routes(origin_code);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_dest_code ON routes(dest_code);`,
	`CREATE INDEX IF NOT EXISTS idx_providers_aircraft ON providers(aircraft_id);`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS airports (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		altitude_ft INTEGER,
		fuel_cost_gl DOUBLE PRECISION NOT NULL DEFAULT 0,
		airport_fee DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS aircraft (
		aircraft_id BIGINT PRIMARY KEY,
		short_name TEXT NOT NULL DEFAULT '',
		cruise_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_payload_lbs DOUBLE PRECISION NOT NULL DEFAULT 0,
		fuel_burn_gal DOUBLE PRECISION NOT NULL DEFAULT 0,
		mtow_kg DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS providers (
		provider_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		aircraft_id BIGINT NOT NULL REFERENCES aircraft(aircraft_id) ON DELETE CASCADE,
		block_hour_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		service_type TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS routes (
		id BIGSERIAL PRIMARY KEY,
		leg TEXT NOT NULL,
		origin_code TEXT NOT NULL REFERENCES airports(code) ON DELETE CASCADE,
		dest_code TEXT NOT NULL REFERENCES airports(code) ON DELETE CASCADE,
		aircraft_id BIGINT NOT NULL REFERENCES aircraft(aircraft_id) ON DELETE CASCADE,
		provider_id BIGINT NOT NULL REFERENCES providers(provider_id) ON DELETE CASCADE,
		distance_nm DOUBLE PRECISION NOT NULL,
		flight_time DOUBLE PRECISION NOT NULL,
		adjusted_flight_time DOUBLE PRECISION NOT NULL,
		max_payload DOUBLE PRECISION NOT NULL,
		service_type TEXT NOT NULL,
		block_hours_cost NUMERIC(14, 2) NOT NULL,
		route_fuel_gls DOUBLE PRECISION NOT NULL,
		fuel_cost NUMERIC(14, 2) NOT NULL,
		overflight_fee NUMERIC(14, 2) NOT NULL,
		overflight_cost NUMERIC(14, 2) NOT NULL,
		airport_fees_cost NUMERIC(14, 2) NOT NULL,
		total_flight_cost NUMERIC(14, 2) NOT NULL,
		UNIQUE (leg, aircraft_id, provider_id),
		CHECK (origin_code <> dest_code)
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_routes_origin_code ON routes(origin_code);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_dest_code ON routes(dest_code);`,
	`CREATE INDEX IF NOT EXISTS idx_providers_aircraft ON providers(aircraft_id);`,
}

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, sqliteSchema)
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, postgresSchema)
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
