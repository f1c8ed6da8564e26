package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/download"
)

// Stats returns the job manager's aggregate snapshot.
func Stats(downloads *download.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, downloads.Stats())
	}
}
