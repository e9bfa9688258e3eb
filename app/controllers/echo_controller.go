package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/catalog-ingest/pkg/bind"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/response"
)

// EchoController is the diagnostic stub: it logs and returns whatever JSON
// it receives and never touches the catalog.
type EchoController struct {
	maxBody int64
}

func NewEchoController(maxBody int64) *EchoController {
	return &EchoController{maxBody: maxBody}
}

type echoBody struct {
	Message  string          `json:"message"`
	YourData json.RawMessage `json:"yourData"`
}

func (c *EchoController) Echo(w http.ResponseWriter, r *http.Request) {
	raw, err := bind.Raw(r, c.maxBody)
	if err != nil {
		writeBindError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("received data", "data", string(raw))
	response.JSON(w, http.StatusOK, echoBody{Message: "Data received", YourData: raw})
}
