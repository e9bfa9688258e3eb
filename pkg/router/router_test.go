package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_GroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/", mw("group"))
	g.Post("/", "ingest", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mw("route"))

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"group", "route", "handler"}, order)
}

func TestRouter_Routes(t *testing.T) {
	r := New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Get("metrics", "metrics", noop)
	r.Post("/", "ingest", noop)
	r.Get("/healthz/", "health", noop)

	assert.Equal(t, []Route{
		{Method: http.MethodPost, Path: "/", Name: "ingest"},
		{Method: http.MethodGet, Path: "/healthz", Name: "health"},
		{Method: http.MethodGet, Path: "/metrics", Name: "metrics"},
	}, r.Routes())
}
