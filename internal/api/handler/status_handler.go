package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Endpoints is advertised by the status payload at GET /.
var Endpoints = []string{
	"/api/register", "/api/login", "/api/featured", "/api/search",
	"/api/list-property", "/api/book", "/api/my-bookings",
	"/api/process-payment", "/api/wu-to-jazzcash", "/api/translate",
	"/api/owner-stats", "/api/ai-pricing", "/ws",
}

type statusResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Time      time.Time `json:"time"`
	Endpoints []string  `json:"endpoints"`
}

type StatusHandler struct {
	version string
	now     func() time.Time
}

func NewStatusHandler(version string) *StatusHandler {
	return &StatusHandler{version: version, now: time.Now}
}

// Status lists the public endpoints.
//
// @Summary      Service status
// @Tags         health
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       / [get]
func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Status:    "co-host rental API live",
		Version:   h.version,
		Time:      h.now().UTC(),
		Endpoints: Endpoints,
	})
}
