package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResults(t *testing.T) {
	w := httptest.NewRecorder()
	Results(w, []int{1, 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"results":[1,2]}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, "No data provided")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No data provided"}`, w.Body.String())
}
