package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/journal"
)

// CreateRestService builds the read-only inspection API of the daemon.
func CreateRestService(
	controllers []controller.ZoneController,
	guard *controller.StandbyGuard,
	eventJournal journal.Journal,
) *echo.Echo {
	rest := echo.New()
	rest.HideBanner = true
	rest.HidePort = true

	rest.Pre(middleware.AddTrailingSlash())
	rest.Use(middleware.Recover())
	rest.Use(echoprometheus.NewMiddleware("ipmifan_api"))

	rest.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
	})

	registerZoneEndpoints(rest, controllers)
	registerDiskEndpoints(rest, guard)
	registerJournalEndpoints(rest, eventJournal)
	registerConfigEndpoints(rest)

	return rest
}
