package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/enrollment-service/internal/config"
)

func TestRequestLoggerCountsByRoutePattern(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/courses/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/courses/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	snap := metrics.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["GET /courses/:id|204"])
	assert.Equal(t, 2, logs.FilterMessage("request").Len())
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Millisecond)
	m.RecordError("/x", "GET", "NOT_FOUND")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.AppConfig{Name: "enrollment-service", Env: "test"}, config.LoggerConfig{Level: "not-a-level"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
