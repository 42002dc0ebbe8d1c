package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"route-cost-service/internal/adapters/repositories"
	"route-cost-service/internal/config"
	"route-cost-service/internal/platform/db"
	"route-cost-service/internal/ports"
	"route-cost-service/internal/services"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	initFlag := flag.Bool("init", false, "create the schema")
	seedFlag := flag.Bool("seed", false, "load the catalog from SEED_PATH")
	clearFlag := flag.Bool("clear", false, "delete every stored route")
	regenFlag := flag.String("regenerate", "", `regenerate routes: "all" or "incremental"`)
	pairFlag := flag.String("pair", "", "regenerate around one leg, as DEP,ARR")
	onlyEmptyFlag := flag.Bool("only-empty", false, "with -regenerate, skip when routes already exist")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// No flags means schema plus seed.
	if !*initFlag && !*seedFlag && !*clearFlag && *regenFlag == "" && *pairFlag == "" {
		*initFlag, *seedFlag = true, true
	}

	if err := run(context.Background(), conn, options{
		init:       *initFlag,
		seed:       *seedFlag,
		clear:      *clearFlag,
		regenerate: *regenFlag,
		pair:       *pairFlag,
		onlyEmpty:  *onlyEmptyFlag,
		seedPath:   config.Get("SEED_PATH", "data/seeds/catalog.json"),
		batchSize:  config.GetInt("BATCH_SIZE", 1000),
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	init       bool
	seed       bool
	clear      bool
	regenerate string
	pair       string
	onlyEmpty  bool
	seedPath   string
	batchSize  int
}

func run(ctx context.Context, conn *sql.DB, opts options) error {
	if opts.init {
		log.Println("Initializing database schema...")
		if err := repositories.InitPostgresSchema(conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		log.Println("Schema ready.")
	}

	if opts.seed {
		log.Println("Seeding catalog...")
		if err := repositories.SeedPostgresCatalogFromJSON(conn, opts.seedPath); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.Println("Seeding complete.")
	}

	routes := repositories.NewSQLRouteStore(conn)

	if opts.clear {
		n, err := routes.DeleteAllRoutes(ctx)
		if err != nil {
			return fmt.Errorf("clear routes failed: %w", err)
		}
		log.Printf("Deleted %d routes.", n)
	}

	if opts.regenerate == "" && opts.pair == "" {
		return nil
	}

	engine, err := services.NewRouteEngine(repositories.NewSQLCatalogRepository(conn), routes, opts.batchSize)
	if err != nil {
		return err
	}

	mode := strings.ToLower(strings.TrimSpace(opts.regenerate))
	if mode != "" && opts.onlyEmpty {
		empty, err := routesEmpty(ctx, routes)
		if err != nil {
			return err
		}
		if !empty {
			log.Println("Routes table is not empty; skipping regeneration.")
			mode = ""
		}
	}

	switch mode {
	case "":
	case "all":
		n, err := engine.RegenerateAll(ctx)
		if err != nil {
			return err
		}
		log.Printf("Regenerated all routes: created=%d", n)
	case "incremental":
		n, err := engine.RegenerateIncremental(ctx)
		if err != nil {
			return err
		}
		log.Printf("Incremental regeneration: created=%d", n)
	default:
		return fmt.Errorf("unknown regenerate mode %q", opts.regenerate)
	}

	if opts.pair != "" {
		dep, arr, ok := strings.Cut(opts.pair, ",")
		if !ok {
			return fmt.Errorf("pair must be DEP,ARR, got %q", opts.pair)
		}
		n, err := engine.RegenerateForAirportPair(ctx, dep, arr)
		if err != nil {
			return err
		}
		log.Printf("Pair regeneration leg=%q created=%d", services.NormalizeCode(dep)+" - "+services.NormalizeCode(arr), n)
	}

	return nil
}

func routesEmpty(ctx context.Context, routes ports.RouteStore) (bool, error) {
	keys, err := routes.ListRouteKeys(ctx)
	if err != nil {
		return false, fmt.Errorf("check routes: %w", err)
	}
	return len(keys) == 0, nil
}
