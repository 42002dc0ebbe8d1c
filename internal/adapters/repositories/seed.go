package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type AirportSeed struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	AltitudeFt  *int     `json:"altitude_ft"`
	FuelCostGal float64  `json:"fuel_cost_gl"`
	AirportFee  float64  `json:"airport_fee"`
}

type AircraftSeed struct {
	ID            int64   `json:"id"`
	ShortName     string  `json:"short_name"`
	CruiseSpeed   float64 `json:"cruise_speed"`
	MaxPayloadLbs float64 `json:"max_payload_lbs"`
	FuelBurnGal   float64 `json:"fuel_burn_gal"`
	MTOWKg        float64 `json:"mtow_kg"`
}

type ProviderSeed struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	AircraftID    int64   `json:"aircraft_id"`
	BlockHourCost float64 `json:"block_hour_cost"`
	Type          string  `json:"type"`
}

type CatalogSeed struct {
	Airports  []AirportSeed  `json:"airports"`
	Aircraft  []AircraftSeed `json:"aircraft"`
	Providers []ProviderSeed `json:"providers"`
}

// ParseCatalogSeed decodes and validates a catalog seed document.
// Airport codes are normalized to upper case. Provider types are stored as given;
// unsupported types are filtered later by the route engine, not here.
func ParseCatalogSeed(data []byte) (CatalogSeed, error) {
	var seed CatalogSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("parse catalog seed: %w", err)
	}

	codes := make(map[string]struct{}, len(seed.Airports))
	for i := range seed.Airports {
		a := &seed.Airports[i]
		a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
		if !isAirportCode(a.Code) {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: airport at index %d: code %q must be 3 letters", i+1, a.Code)
		}
		if _, dup := codes[a.Code]; dup {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: duplicate airport code %q", a.Code)
		}
		codes[a.Code] = struct{}{}
	}

	aircraftIDs := make(map[int64]struct{}, len(seed.Aircraft))
	for i, ac := range seed.Aircraft {
		if ac.ID <= 0 {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: invalid aircraft id at index %d: %d", i+1, ac.ID)
		}
		if _, dup := aircraftIDs[ac.ID]; dup {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: duplicate aircraft id %d", ac.ID)
		}
		aircraftIDs[ac.ID] = struct{}{}
	}

	providerIDs := make(map[int64]struct{}, len(seed.Providers))
	for i := range seed.Providers {
		p := &seed.Providers[i]
		if p.ID <= 0 {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: invalid provider id at index %d: %d", i+1, p.ID)
		}
		if _, dup := providerIDs[p.ID]; dup {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: duplicate provider id %d", p.ID)
		}
		providerIDs[p.ID] = struct{}{}
		if _, ok := aircraftIDs[p.AircraftID]; !ok {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: provider %d references unknown aircraft %d", p.ID, p.AircraftID)
		}
		p.Type = strings.ToLower(strings.TrimSpace(p.Type))
		if p.Type == "" {
			return CatalogSeed{}, fmt.Errorf("parse catalog seed: provider %d has no type", p.ID)
		}
	}

	return seed, nil
}

func isAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Populate the SQLite catalog tables from a JSON file.
func SeedCatalogFromJSON(db *sql.DB, jsonPath string) error {
	return seedCatalogFromJSON(db, sqliteDialect, jsonPath)
}

// Populate the Postgres catalog tables from a JSON file.
func SeedPostgresCatalogFromJSON(db *sql.DB, jsonPath string) error {
	return seedCatalogFromJSON(db, postgresDialect, jsonPath)
}

func seedCatalogFromJSON(db *sql.DB, d dialect, jsonPath string) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	seed, err := ParseCatalogSeed(bytes)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	return writeCatalogSeed(db, d, seed)
}

// Upserts keep existing rows in place so routes referencing them survive a reseed.
func writeCatalogSeed(db *sql.DB, d dialect, seed CatalogSeed) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	airportStmt, err := tx.Prepare(`
	INSERT INTO airports (code, name, city, country, latitude, longitude, altitude_ft, fuel_cost_gl, airport_fee)
	VALUES ` + d.values(1, 9) + `
	ON CONFLICT (code) DO UPDATE
	SET name = EXCLUDED.name,
		city = EXCLUDED.city,
		country = EXCLUDED.country,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		altitude_ft = EXCLUDED.altitude_ft,
		fuel_cost_gl = EXCLUDED.fuel_cost_gl,
		airport_fee = EXCLUDED.airport_fee;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare airport insert: %w", err)
	}
	defer airportStmt.Close()

	for _, a := range seed.Airports {
		if _, err := airportStmt.Exec(a.Code, a.Name, a.City, a.Country, a.Latitude, a.Longitude, a.AltitudeFt, a.FuelCostGal, a.AirportFee); err != nil {
			return fmt.Errorf("seed catalog: insert airport %s: %w", a.Code, err)
		}
	}

	aircraftStmt, err := tx.Prepare(`
	INSERT INTO aircraft (aircraft_id, short_name, cruise_speed, max_payload_lbs, fuel_burn_gal, mtow_kg)
	VALUES ` + d.values(1, 6) + `
	ON CONFLICT (aircraft_id) DO UPDATE
	SET short_name = EXCLUDED.short_name,
		cruise_speed = EXCLUDED.cruise_speed,
		max_payload_lbs = EXCLUDED.max_payload_lbs,
		fuel_burn_gal = EXCLUDED.fuel_burn_gal,
		mtow_kg = EXCLUDED.mtow_kg;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare aircraft insert: %w", err)
	}
	defer aircraftStmt.Close()

	for _, ac := range seed.Aircraft {
		if _, err := aircraftStmt.Exec(ac.ID, ac.ShortName, ac.CruiseSpeed, ac.MaxPayloadLbs, ac.FuelBurnGal, ac.MTOWKg); err != nil {
			return fmt.Errorf("seed catalog: insert aircraft id=%d: %w", ac.ID, err)
		}
	}

	providerStmt, err := tx.Prepare(`
	INSERT INTO providers (provider_id, name, aircraft_id, block_hour_cost, service_type)
	VALUES ` + d.values(1, 5) + `
	ON CONFLICT (provider_id) DO UPDATE
	SET name = EXCLUDED.name,
		aircraft_id = EXCLUDED.aircraft_id,
		block_hour_cost = EXCLUDED.block_hour_cost,
		service_type = EXCLUDED.service_type;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare provider insert: %w", err)
	}
	defer providerStmt.Close()

	for _, p := range seed.Providers {
		if _, err := providerStmt.Exec(p.ID, p.Name, p.AircraftID, p.BlockHourCost, p.Type); err != nil {
			return fmt.Errorf("seed catalog: insert provider id=%d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
