package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// ValidateColorRequest carries a user-supplied color string.
type ValidateColorRequest struct {
	Color string `json:"color"`
}

// ValidateColor checks a color string and suggests corrections for
// near-misses.
func ValidateColor() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ValidateColorRequest
		if err := c.Bind(&req); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}
		return c.JSON(http.StatusOK, theme.ValidateColor(req.Color))
	}
}
