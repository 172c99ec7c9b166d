package testkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatus checks the response code and prints the body on mismatch.
func AssertStatus(t testing.TB, rec *httptest.ResponseRecorder, code int) bool {
	t.Helper()
	return assert.Equal(t, code, rec.Code, "body: %s", rec.Body.String())
}

// AssertJSON compares the body with expected after normalising both through
// json.Unmarshal, so key order and whitespace never matter.
func AssertJSON(t testing.TB, rec *httptest.ResponseRecorder, expected string) {
	t.Helper()

	var exp, act any
	require.NoError(t, json.Unmarshal([]byte(expected), &exp), "expected is not valid JSON")
	if !assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act), "body is not valid JSON: %s", rec.Body.String()) {
		return
	}
	assert.Equal(t, exp, act)
}

// AssertError checks for a 400 carrying {"error": message}.
func AssertError(t testing.TB, rec *httptest.ResponseRecorder, message string) {
	t.Helper()
	if AssertStatus(t, rec, http.StatusBadRequest) {
		AssertJSON(t, rec, mustJSON(t, map[string]string{"error": message}))
	}
}

// AssertUnauthorized checks for a 401 with an empty body.
func AssertUnauthorized(t testing.TB, rec *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rec, http.StatusUnauthorized)
	assert.Empty(t, rec.Body.String())
}

func mustJSON(t testing.TB, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
