package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request with its latency and the
// calculation kind the path maps to.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			log.Printf("[%s] %s %s kind=%s - %d (%s)",
				req.Method,
				req.RequestURI,
				req.RemoteAddr,
				requestKind(req.URL.Path),
				res.Status,
				time.Since(start),
			)

			return err
		}
	}
}

// requestKind buckets a path by the calculation it triggers, for log
// filtering.
func requestKind(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/charts"):
		return "chart"
	case strings.HasPrefix(path, "/api/transits"):
		return "transit"
	case strings.HasPrefix(path, "/api/progressions"):
		return "progression"
	case strings.HasPrefix(path, "/api/planets"):
		return "planets"
	default:
		return "other"
	}
}
