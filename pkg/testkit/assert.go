package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual response bytes against the expected
// file after normalising both through JSON unmarshal, so key order and
// whitespace never matter. scenario.IgnoreFields are removed first.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal interface{}

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	ignore := make(map[string]bool, len(scenario.IgnoreFields))
	for _, f := range scenario.IgnoreFields {
		ignore[f] = true
	}

	assert.Equal(t, strip(expVal, ignore), strip(actVal, ignore),
		"[%s] response body mismatch", scenario.Name)
}

func strip(v interface{}, ignore map[string]bool) interface{} {
	if len(ignore) == 0 {
		return v
	}
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			if !ignore[k] {
				out[k] = strip(child, ignore)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = strip(child, ignore)
		}
		return out
	}
	return v
}
