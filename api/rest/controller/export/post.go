// Package export holds the controllers for the asynchronous export
// job endpoints.
package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/export"
	"github.com/snipframe-cloud/snipframe/internal/snippet"
	"github.com/snipframe-cloud/snipframe/internal/theme"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
)

// StartRequest is the body of an export submission.
type StartRequest struct {
	Code     string         `json:"code"`
	Language string         `json:"language"`
	Filename string         `json:"filename"`
	ThemeID  string         `json:"theme_id"`
	Options  export.Options `json:"options"`
}

// StartResponse acknowledges an admitted job.
type StartResponse struct {
	JobID string `json:"job_id"`
}

// Post admits an export job and returns its id without waiting for
// execution.
func Post(downloads *download.Manager, themes *theme.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req StartRequest
		if err := c.Bind(&req); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}

		processed, err := snippet.Process(req.Code, req.Filename, req.Language)
		if err != nil {
			return respond.Error(err)
		}

		th := themes.Default()
		if req.ThemeID != "" {
			if th, err = themes.Get(req.ThemeID); err != nil {
				return respond.Error(err)
			}
		}

		id, err := downloads.Start(c.Request().Context(), download.Request{
			Code:     processed.Code,
			Language: processed.Language,
			Theme:    th,
			Options:  req.Options,
		})
		if err != nil {
			return respond.Error(err)
		}

		return c.JSON(http.StatusAccepted, StartResponse{JobID: id})
	}
}
