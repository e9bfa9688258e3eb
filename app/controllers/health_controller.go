package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/response"
)

// Pinger reports whether the catalog is reachable.
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
}

func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping}
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(ctx); err != nil {
			logger.WithCtx(r.Context()).Warn("health check failed", "error", err)
			response.Error(w, http.StatusServiceUnavailable, "catalog unreachable")
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
