package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/cases/:id", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/cases/:id", "GET", 200, 5*time.Millisecond)
	m.RecordError("/cases/:id", "UNKNOWN_CASE")

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/cases/:id", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/cases/:id", "UNKNOWN_CASE")))
}

func TestNilMetricsAreIgnored(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "SERVER_ERR")
	})
}

func TestRequestLoggerUsesRoutePattern(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/cases/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/cases/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/cases/:id", "204")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "case_service_http_requests_total"))
}
