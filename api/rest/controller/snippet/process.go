// Package snippet holds the controllers for snippet preprocessing.
package snippet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/snippet"
)

// ProcessRequest is the body of a preprocessing call.
type ProcessRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

// Process validates, normalizes and language-detects a snippet without
// exporting it.
func Process() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ProcessRequest
		if err := c.Bind(&req); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}

		s, err := snippet.Process(req.Code, req.Filename, req.Language)
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, s)
	}
}
