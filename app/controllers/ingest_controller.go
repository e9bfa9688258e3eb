package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog-ingest/app/services"
	"github.com/shashiranjanraj/catalog-ingest/pkg/bind"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/response"
)

// BatchProcessor reconciles one batch against the catalog.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, records []services.Record) (*services.Outcome, error)
}

type IngestController struct {
	batches  BatchProcessor
	archiver *services.Archiver
	maxBody  int64
}

// NewIngestController builds the ingestion handler. archiver may be nil.
func NewIngestController(batches BatchProcessor, archiver *services.Archiver, maxBody int64) *IngestController {
	return &IngestController{batches: batches, archiver: archiver, maxBody: maxBody}
}

// Ingest handles POST / with a JSON array of scraped products.
func (c *IngestController) Ingest(w http.ResponseWriter, r *http.Request) {
	records, raw, err := bind.JSONArray[services.Record](r, c.maxBody)
	if err != nil {
		writeBindError(w, err)
		return
	}

	out, err := c.batches.ProcessBatch(r.Context(), records)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to process data: "+err.Error())
		return
	}

	c.archiver.Archive(r.Context(), out.BatchID, raw)
	response.Results(w, out.Results)
}

// writeBindError maps body decoding failures to 400s.
func writeBindError(w http.ResponseWriter, err error) {
	var (
		syntaxErr *bind.SyntaxError
		itemErr   *bind.ItemError
	)
	switch {
	case errors.Is(err, bind.ErrNoData):
		response.BadRequest(w, bind.ErrNoData.Error())
	case errors.As(err, &syntaxErr), errors.As(err, &itemErr):
		response.BadRequest(w, err.Error())
	default:
		logger.Error("unexpected bind error", "error", err)
		response.BadRequest(w, (&bind.SyntaxError{Err: err}).Error())
	}
}
