package api

import (
	"net/http"
	"route-cost-service/internal/api/handlers"
	"route-cost-service/internal/ports"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(catalog ports.CatalogRepository, routes ports.RouteStore, engine ports.RouteRegenerator) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	airportHandler := &handlers.AirportHandler{Catalog: catalog}
	routeHandler := &handlers.RouteHandler{
		Catalog: catalog,
		Routes:  routes,
		Engine:  engine,
	}

	r.Get("/health", handlers.Health)
	r.Get("/airports", airportHandler.List)

	r.Post("/routes/lookup", routeHandler.Lookup)
	r.Post("/routes/regenerate", routeHandler.Regenerate)
	r.Delete("/routes", routeHandler.DeleteAll)

	return r
}
