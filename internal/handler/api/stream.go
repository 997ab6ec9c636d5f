package api

import (
	"net/http"
	"time"

	"astroengine/internal/domain/models"
	xhttp "astroengine/pkg/http"
	xlogger "astroengine/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// CORS is already enforced at the middleware layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TransitStream pushes a fresh transit report over a websocket at a
// fixed interval until the client disconnects.
func (h *Handler) TransitStream(c echo.Context) error {
	req := &models.TransitStreamQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	t, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("datetime must be RFC3339").WithError(err))
	}
	bd := models.BirthData{Datetime: t.UTC(), Latitude: req.Latitude, Longitude: req.Longitude}
	interval := time.Duration(req.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// drain client frames so pings and close messages are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	send := func() bool {
		report, err := h.transits.At(ctx, bd, models.ChartOptions{}, time.Now().UTC())
		if err != nil {
			h.logger.Warn("transit stream compute failed", xlogger.Error(err))
			return true
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(report); err != nil {
			return false
		}
		return true
	}

	if !send() {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !send() {
				return nil
			}
		}
	}
}
