package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/download"
)

// Get returns a progress snapshot for one job.
func Get(downloads *download.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := downloads.Progress(c.Param("id"))
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, job)
	}
}
