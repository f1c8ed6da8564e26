// Package theme holds the controllers for the theme catalog
// endpoints.
package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// List returns the catalog, optionally filtered by ?type=dark|light.
func List(themes *theme.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch typ := c.QueryParam("type"); typ {
		case "":
			return c.JSON(http.StatusOK, themes.List())
		case string(theme.TypeDark), string(theme.TypeLight):
			return c.JSON(http.StatusOK, themes.ListByType(theme.Type(typ)))
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "unknown theme type: "+typ)
		}
	}
}
