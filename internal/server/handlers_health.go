package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mariusrugan/credit-card-tx-api/internal/version"
)

// handleHealth reports liveness for container orchestrators and load
// balancers. The websocket clients never call it.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
	})
}
