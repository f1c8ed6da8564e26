package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// CustomizeRequest derives a theme from a base without registering it.
type CustomizeRequest struct {
	BaseID    string          `json:"base_id"`
	Overrides theme.Overrides `json:"overrides"`
}

// Customize applies overrides to a base theme and returns the result.
func Customize(themes *theme.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CustomizeRequest
		if err := c.Bind(&req); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}

		t, err := themes.Customize(req.BaseID, req.Overrides)
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, t)
	}
}
