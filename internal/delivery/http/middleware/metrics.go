package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geo-engine/internal/metrics"
)

// unmatchedRoute - метка для запросов, не попавших ни в один маршрут
const unmatchedRoute = "unmatched"

// Metrics - счетчик и гистограмма запросов по шаблону маршрута
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		// без совпавшего маршрута остается маршрут middleware с путем "/"
		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/" && c.Path() != "/" {
			route = unmatchedRoute
		}

		m.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
