package routes

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/app/controllers"
	"github.com/shashiranjanraj/catalog-ingest/app/services"
	"github.com/shashiranjanraj/catalog-ingest/pkg/database"
	"github.com/shashiranjanraj/catalog-ingest/pkg/middleware"
	"github.com/shashiranjanraj/catalog-ingest/pkg/router"
)

// Deps are the collaborators the ingest routes need.
type Deps struct {
	DB           *gorm.DB
	Archiver     *services.Archiver // nil disables the raw batch archive
	MaxBodyBytes int64
	JWTSecret    string // empty disables bearer auth
}

// RegisterAPI mounts the ingestion endpoint and the health check.
func RegisterAPI(r *router.Router, d Deps) {
	ingest := controllers.NewIngestController(services.NewBatchService(d.DB), d.Archiver, d.MaxBodyBytes)
	health := controllers.NewHealthController(func(ctx context.Context) error {
		return database.Ping(ctx, d.DB)
	})

	r.Get("/healthz", "health", health.Health)
	r.Post("/", "ingest", ingest.Ingest, middleware.BearerAuth(d.JWTSecret))
}

// RegisterEcho mounts the diagnostic echo service.
func RegisterEcho(r *router.Router, maxBodyBytes int64) {
	echo := controllers.NewEchoController(maxBodyBytes)
	health := controllers.NewHealthController(nil)

	r.Get("/healthz", "health", health.Health)
	r.Post("/", "echo", echo.Echo)
}
