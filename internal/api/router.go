package api

import (
	"net/http"
	"time"

	"delivery-date-service/internal/api/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services the HTTP surface needs.
type Deps struct {
	Calc     handlers.DeliveryDateCalculator
	Holidays handlers.HolidayGenerator
	Caches   []handlers.CacheClearer
	// SlowRequest marks slower requests as warn in the access log.
	SlowRequest time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(d.SlowRequest), recoverMiddleware)

	dateHandler := &handlers.DeliveryDateHandler{Calc: d.Calc}
	holidayHandler := &handlers.HolidayHandler{Gen: d.Holidays}
	cacheHandler := &handlers.CacheHandler{Caches: d.Caches}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/delivery-date", dateHandler.Calculate)
		r.Get("/holidays/{year}", holidayHandler.List)
		r.Post("/rules/cache/clear", cacheHandler.Clear)
	})

	return r
}
