package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	RequestIDKey = "X-Request-ID"

	loggerKey = "logger"
)

// FromContext returns the request-scoped logger set by Middleware. When
// a handler runs outside the middleware chain the global logger is
// returned, tagged with the request ID if one is known.
func FromContext(c echo.Context) *zap.Logger {
	if reqLogger, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return reqLogger
	}

	requestID, _ := c.Get(RequestIDKey).(string)
	if requestID == "" {
		requestID = c.Request().Header.Get(RequestIDKey)
	}
	if requestID == "" {
		return GetLogger()
	}
	return GetLogger().With(zap.String("request_id", requestID))
}
