package middleware

import (
	"strconv"
	"time"

	"go-shop-admin/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records prometheus counters and latency per route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Route().Path keeps the cardinality bounded (":id", not the value)
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}
