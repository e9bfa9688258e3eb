package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog-ingest/pkg/validate"
)

func TestSourceID_KeepsJSONForm(t *testing.T) {
	cases := []struct {
		in   string
		want string
		text string
	}{
		{`77`, `77`, "77"},
		{`"77"`, `"77"`, "77"},
		{`"sku-9"`, `"sku-9"`, "sku-9"},
		{`1.5e3`, `1.5e3`, "1.5e3"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var id SourceID
			require.NoError(t, json.Unmarshal([]byte(tc.in), &id))
			assert.Equal(t, tc.text, id.String())

			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestSourceID_RejectsOtherTypes(t *testing.T) {
	var id SourceID
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestProcessedRecord_EchoesNumericProductID(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"productId": 77, "productUrl": "http://x/77"}`), &rec))

	out, err := json.Marshal(ProcessedRecord{Record: rec, Action: ActionInsert, ID: 1, OriginalProductID: rec.ProductID.String()})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, 77.0, got["productId"])
	assert.Equal(t, "77", got["originalProductId"])
}

func TestRecord_ProductIDRequired(t *testing.T) {
	for _, body := range []string{
		`{"productUrl": "http://x/1"}`,
		`{"productId": null, "productUrl": "http://x/1"}`,
		`{"productId": "  ", "productUrl": "http://x/1"}`,
	} {
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(body), &rec))
		errs := validate.Struct(&rec)
		assert.Equal(t, "is required", errs["productId"], body)
	}

	rec := Record{ProductID: NumberID("42"), ProductURL: "http://x/1"}
	assert.False(t, validate.HasErrors(validate.Struct(&rec)))
}
