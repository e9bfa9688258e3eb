// Package kernel builds the HTTP handler shared by the ingest and echo
// services: global middleware, /metrics, then the service's routes.
package kernel

import (
	"github.com/shashiranjanraj/catalog-ingest/pkg/metrics"
	"github.com/shashiranjanraj/catalog-ingest/pkg/middleware"
	"github.com/shashiranjanraj/catalog-ingest/pkg/reqid"
	"github.com/shashiranjanraj/catalog-ingest/pkg/router"
)

// New returns a router with the global middleware installed and the given
// route registrations applied. limiter may be nil.
func New(limiter *middleware.Limiter, register ...func(*router.Router)) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics: outermost for accurate total latency
	//  2. Request ID: inject unique ID before anything logs
	//  3. Logger: request-scoped logger carrying the request_id
	//  4. Recovery: catches panics, logs them with the request_id
	//  5. Rate limiter: reject abusers before any body is read
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter))
	}

	r.Get("/metrics", "metrics", metrics.Handler())

	for _, fn := range register {
		fn(r)
	}
	return r
}
