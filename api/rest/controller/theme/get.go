package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// Get returns one theme by id.
func Get(themes *theme.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := themes.Get(c.Param("id"))
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, t)
	}
}
