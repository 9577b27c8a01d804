package logger

import (
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// InitLogger builds the global logger. Development gets colored console
// output, production gets structured JSON.
func InitLogger(cfg *config.Config) {
	var zapCfg zap.Config
	if cfg.Server.Env == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level.SetLevel(level)

	var err error
	log, err = zapCfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	log.Info("Logger initialized", zap.String("level", level.String()))
}

// GetLogger returns the global logger, falling back to a production
// logger when InitLogger has not run (tests, early startup).
func GetLogger() *zap.Logger {
	if log == nil {
		var err error
		log, err = zap.NewProduction()
		if err != nil {
			panic("Failed to create fallback logger: " + err.Error())
		}
	}
	return log
}

// Middleware stashes a request-scoped logger in the echo context and
// writes one line per request. Tenant-scoped requests carry their
// tenant identifier so lines can be grouped per account.
func Middleware(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID, _ := c.Get(RequestIDKey).(string)
			if requestID == "" {
				requestID = c.Request().Header.Get(RequestIDKey)
			}

			reqLogger := base.With(zap.String("request_id", requestID))
			c.Set(loggerKey, reqLogger)

			err := next(c)

			fields := []zapcore.Field{
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Int64("bytes_out", c.Response().Size),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if tenantID, ok := c.Get("tenant_id").(string); ok && tenantID != "" {
				fields = append(fields, zap.String("tenant_id", tenantID))
			}

			if err != nil {
				reqLogger.Error("Request failed", append(fields, zap.Error(err))...)
			} else {
				reqLogger.Info("Request completed", fields...)
			}

			return err
		}
	}
}
