package api

import (
	"context"
	"net/http"
	"time"

	"astroengine/internal/usecase"
	xlogger "astroengine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler wires every API route to its usecase.
type Handler struct {
	logger         *xlogger.Logger
	charts         *usecase.BirthChartUseCase
	transits       *usecase.TransitUseCase
	progressions   *usecase.ProgressionUseCase
	requestTimeout time.Duration
	forecastBodies []string
}

func NewHandler(
	logger *xlogger.Logger,
	charts *usecase.BirthChartUseCase,
	transits *usecase.TransitUseCase,
	progressions *usecase.ProgressionUseCase,
	requestTimeout time.Duration,
	forecastBodies []string,
) *Handler {
	return &Handler{
		logger:         logger,
		charts:         charts,
		transits:       transits,
		progressions:   progressions,
		requestTimeout: requestTimeout,
		forecastBodies: forecastBodies,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/charts", h.CreateChart)
	g.GET("/charts/summary", h.ChartSummary)
	g.GET("/planets", h.Planets)
	g.POST("/transits", h.Transits)
	g.POST("/transits/period", h.TransitPeriod)
	g.GET("/transits/forecast", h.TransitForecast)
	g.GET("/transits/stream", h.TransitStream)
	g.POST("/progressions", h.Progressions)
}

// requestContext bounds every calculation with the configured timeout.
func (h *Handler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request().Context()
	if h.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
