package middleware

import (
	"time"

	"app/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger は全リクエストをログに残し、metrics sinkへ集計を送る。
func RequestLogger(log *logrus.Logger, sink metrics.Sink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, rid)

			err := next(c)
			if err != nil {
				// ここで反映させないとstatusが200のまま記録される
				c.Error(err)
			}

			status := c.Response().Status
			duration := time.Since(start)
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if sink != nil {
				sink.ObserveRequest(c.Request().Method, path, status, duration)
			}

			entry := log.WithFields(logrus.Fields{
				"request_id": rid,
				"method":     c.Request().Method,
				"path":       path,
				"status":     status,
				"duration":   duration.String(),
				"ip":         c.RealIP(),
			})

			switch {
			case status >= 500:
				entry.Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}

			return nil
		}
	}
}
