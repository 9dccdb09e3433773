package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

func registerConfigEndpoints(rest *echo.Echo) {
	group := rest.Group("/config")

	group.GET("/", func(c echo.Context) error {
		// deep copy so handlers never hand out the live configuration
		var snapshot configuration.Configuration
		if err := reprint.FromTo(&configuration.CurrentConfig, &snapshot); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSONPretty(http.StatusOK, snapshot, "  ")
	})
}
