package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream_CountsOutcome(t *testing.T) {
	okBefore := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-upstream", "ok"))
	errBefore := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-upstream", "error"))

	ObserveUpstream("test-upstream", time.Now(), nil)
	ObserveUpstream("test-upstream", time.Now(), errors.New("down"))
	ObserveUpstream("test-upstream", time.Now(), errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-upstream", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-upstream", "error")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `weather_forecast_http_requests_total{method="GET",path="/ping",status="200"}`)
}
