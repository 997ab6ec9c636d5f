package http

import "github.com/labstack/echo/v4"

// Handler registers a related group of chart API routes on the echo
// instance built by NewServer.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
