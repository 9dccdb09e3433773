package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ipmifan/ipmifan/internal/controller"
)

func registerZoneEndpoints(rest *echo.Echo, controllers []controller.ZoneController) {
	group := rest.Group("/zone")

	group.GET("/", func(c echo.Context) error {
		snapshots := make(map[string]controller.ZoneSnapshot, len(controllers))
		for _, zoneController := range controllers {
			snapshots[zoneController.Name()] = zoneController.Snapshot()
		}
		return c.JSONPretty(http.StatusOK, snapshots, "  ")
	})

	group.GET("/:name/", func(c echo.Context) error {
		name := c.Param("name")
		for _, zoneController := range controllers {
			if zoneController.Name() == name {
				return c.JSONPretty(http.StatusOK, zoneController.Snapshot(), "  ")
			}
		}
		return c.NoContent(http.StatusNotFound)
	})
}
