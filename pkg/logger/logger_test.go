package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tenants", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMiddleware_SetsRequestScopedLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	c, _ := newTestContext()
	c.Set(RequestIDKey, "req-42")
	c.Set("tenant_id", "t-1")

	handler := Middleware(base)(func(c echo.Context) error {
		scoped := FromContext(c)
		scoped.Info("inside handler")
		return c.NoContent(http.StatusNoContent)
	})
	require.NoError(t, handler(c))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "inside handler", entries[0].Message)
	assert.Equal(t, "Request completed", entries[1].Message)

	fields := entries[1].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "t-1", fields["tenant_id"])
	assert.Equal(t, "GET", fields["method"])
}

func TestMiddleware_LogsHandlerError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	c, _ := newTestContext()
	handler := Middleware(base)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})
	assert.Error(t, handler(c))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Request failed", entries[0].Message)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	c, _ := newTestContext()
	c.Request().Header.Set(RequestIDKey, "req-7")

	// No middleware ran, so the global logger is tagged on the fly
	assert.NotNil(t, FromContext(c))
}
