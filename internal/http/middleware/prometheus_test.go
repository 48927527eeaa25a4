package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/api/gallery", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendString("metrics")
	})

	t.Run("counts requests by route pattern", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/gallery", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		}

		got := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/gallery", "200"))
		assert.Equal(t, float64(3), got)
	})

	t.Run("observes request duration", func(t *testing.T) {
		count := testutil.CollectAndCount(m.requestDuration)
		assert.Greater(t, count, 0)
	})

	t.Run("does not count the metrics endpoint", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		got := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/metrics", "200"))
		assert.Equal(t, float64(0), got)
	})

	t.Run("double registration fails", func(t *testing.T) {
		_, err := NewPrometheusMiddleware(reg)
		assert.Error(t, err)
	})
}
