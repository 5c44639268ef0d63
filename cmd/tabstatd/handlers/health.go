package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	apihealth "github.com/statops/tabstat/pkg/api/types/health"
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
)

func HealthHandler(service string, version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, apihealth.Response{
			Status:    "healthy",
			Service:   service,
			Version:   version,
			Timestamp: rfctime.RFC3339(time.Now()),
		})
	}
}
