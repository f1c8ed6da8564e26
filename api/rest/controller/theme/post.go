package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// Post registers a custom theme.
func Post(themes *theme.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var t theme.Theme
		if err := c.Bind(&t); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}

		if err := themes.Register(t); err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}
