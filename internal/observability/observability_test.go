package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var lines []map[string]interface{}

	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))

		lines = append(lines, line)
	}

	return lines
}

func TestLogger(t *testing.T) {
	t.Run("fields and level filtering", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewLogger(InitLogger("capi-admin", &buf, "info", false))
		logger.Debug("hidden", nil)
		logger.Info("Application converged", map[string]interface{}{"application": "web", "attempts": 2})
		logger.Error("Route delete failed", map[string]interface{}{"route": "www.example.com"})

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)

		assert.Equal(t, "info", lines[0]["level"])
		assert.Equal(t, "Application converged", lines[0]["message"])
		assert.Equal(t, "web", lines[0]["application"])
		assert.InDelta(t, 2, lines[0]["attempts"], 0)
		assert.Equal(t, "capi-admin", lines[0]["app"])

		assert.Equal(t, "error", lines[1]["level"])
		assert.Equal(t, "www.example.com", lines[1]["route"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewLogger(InitLogger("capi-admin", &buf, "chatty", false))
		logger.Debug("hidden", nil)
		logger.Warn("shown", nil)

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "warn", lines[0]["level"])
		assert.Equal(t, "capi-admin", lines[0]["app"])
	})
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()

	loginsBefore := testutil.ToFloat64(logins.WithLabelValues("false"))
	metrics.ObserveLogin(false)
	assert.InDelta(t, loginsBefore+1, testutil.ToFloat64(logins.WithLabelValues("false")), 0)

	retriesBefore := testutil.ToFloat64(authRetries)
	metrics.ObserveAuthRetry()
	assert.InDelta(t, retriesBefore+1, testutil.ToFloat64(authRetries), 0)

	pagesBefore := testutil.ToFloat64(pages.WithLabelValues("offset"))
	metrics.ObservePage("offset")
	metrics.ObservePage("offset")
	assert.InDelta(t, pagesBefore+2, testutil.ToFloat64(pages.WithLabelValues("offset")), 0)

	opsBefore := testutil.ToFloat64(operations.WithLabelValues("RESTART", "converged"))
	metrics.ObserveOperation("RESTART", "converged", 1500*time.Millisecond)
	assert.InDelta(t, opsBefore+1, testutil.ToFloat64(operations.WithLabelValues("RESTART", "converged")), 0)
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer

	logger := InitLogger("capi-admin", &buf, "info", false)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger), RequestMetricsMiddleware)
	router.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/things/{id}", "404"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.InDelta(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/things/{id}", "404")), 0)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "http_request", lines[0]["message"])
	assert.Equal(t, "/things/{id}", lines[0]["path"])
	assert.InDelta(t, 404, lines[0]["status"], 0)
}
