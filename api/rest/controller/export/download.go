package export

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/download"
)

// Download streams a completed job's artifact. A lapsed artifact is
// 410, one that never existed is 404.
func Download(downloads *download.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, artifact, err := downloads.Fetch(c.Param("id"))
		if err != nil {
			return respond.Error(err)
		}

		c.Response().Header().Set(
			echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", artifact.Filename),
		)
		return c.Blob(200, artifact.ContentType, data)
	}
}
