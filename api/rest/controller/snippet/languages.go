package snippet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/language"
)

// Languages lists every supported language.
func Languages() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, language.List())
	}
}
