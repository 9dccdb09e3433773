package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/journal"
)

func registerDiskEndpoints(rest *echo.Echo, guard *controller.StandbyGuard) {
	group := rest.Group("/disk")

	group.GET("/", func(c echo.Context) error {
		if guard == nil {
			return c.NoContent(http.StatusNotFound)
		}
		return c.JSONPretty(http.StatusOK, guard.Snapshot(), "  ")
	})
}

func registerJournalEndpoints(rest *echo.Echo, eventJournal journal.Journal) {
	group := rest.Group("/journal")

	group.GET("/", func(c echo.Context) error {
		events, err := eventJournal.Events(100)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSONPretty(http.StatusOK, events, "  ")
	})
}
