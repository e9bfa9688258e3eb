// Package bind decodes and validates an HTTP request body.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/catalog-ingest/pkg/validate"
)

// ErrNoData is returned for an absent body, `null` or an empty array.
var ErrNoData = errors.New("No data provided")

// SyntaxError is a body that is not JSON of the expected shape, or that is
// larger than the configured limit.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "Invalid JSON format: " + e.Err.Error() }

func (e *SyntaxError) Unwrap() error { return e.Err }

// ItemError reports the first invalid element of an array body.
type ItemError struct {
	Index  int
	Errors map[string]string
}

func (e *ItemError) Error() string {
	field, msg := validate.First(e.Errors)
	return fmt.Sprintf("Invalid product at index %d: %s: %s", e.Index, field, msg)
}

// Raw reads the body, capped at maxBytes, and checks that it is JSON.
func Raw(r *http.Request, maxBytes int64) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &SyntaxError{Err: fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)}
		}
		return nil, &SyntaxError{Err: err}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, ErrNoData
	}
	if !json.Valid(body) {
		var v interface{}
		return nil, &SyntaxError{Err: json.Unmarshal(body, &v)}
	}
	return body, nil
}

// JSONArray decodes an array body into items and validates each element.
// raw is the body as received, for callers that keep a copy.
func JSONArray[T any](r *http.Request, maxBytes int64) (items []T, raw json.RawMessage, err error) {
	raw, err = Raw(r, maxBytes)
	if err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, &SyntaxError{Err: err}
	}
	if len(items) == 0 {
		return nil, nil, ErrNoData
	}

	for i := range items {
		if errs := validate.Struct(&items[i]); validate.HasErrors(errs) {
			return nil, nil, &ItemError{Index: i, Errors: errs}
		}
	}
	return items, raw, nil
}
