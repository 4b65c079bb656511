// Package middleware provides Echo middleware for the offer tracker API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
)

// probeGauges holds the operational paths kept out of request metrics. A
// non-nil gauge tracks the last probe result as 0/1.
var probeGauges = map[string]prometheus.Gauge{
	"/metrics": nil,
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := routePath(c)

			if gauge, probe := probeGauges[path]; probe {
				err := next(c)
				if gauge != nil {
					gauge.Set(boolToFloat(isSuccess(c.Response().Status)))
				}
				return err
			}

			start := time.Now()
			err := next(c)

			labels := []string{c.Request().Method, path, strconv.Itoa(c.Response().Status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
