package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"route-cost-service/internal/adapters/events"
	"route-cost-service/internal/adapters/repositories"
	"route-cost-service/internal/api"
	"route-cost-service/internal/config"
	"route-cost-service/internal/platform/db"
	"route-cost-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, NATS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/catalog.json")
	port := config.Get("PORT", "8080")
	batchSize := config.GetInt("BATCH_SIZE", 1000)

	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed the catalog on startup for local runs.
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}

	catalog := repositories.NewSqliteCatalogRepository(conn)
	routes := repositories.NewSqliteRouteStore(conn)
	engine, err := services.NewRouteEngine(catalog, routes, batchSize)
	if err != nil {
		log.Fatal(err)
	}

	if config.GetBool("REGENERATE_ON_START", true) {
		n, err := engine.RegenerateIncremental(context.Background())
		if err != nil {
			log.Fatalf("startup regeneration failed: %v", err)
		}
		log.Printf("startup regeneration created=%d", n)
	}

	if natsURL := config.Get("NATS_URL", ""); natsURL != "" {
		trigger, err := events.NewNATSTrigger(natsURL, config.Get("NATS_SUBJECT", "catalog.changed"), engine)
		if err != nil {
			log.Fatal(err)
		}
		if err := trigger.Start(); err != nil {
			log.Fatal(err)
		}
		defer trigger.Close()
	}

	router := api.NewRouter(catalog, routes, engine)

	// Full regeneration runs inside the request, so writes get a long deadline.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", port)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	case sig := <-stop:
		log.Printf("shutting down signal=%s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedCatalogFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
