// Package respond maps application errors onto the HTTP error shapes
// the controllers return.
package respond

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// Error converts err into the echo HTTP error the boundary returns.
// Classified errors keep their message; anything else is an opaque
// internal error with the cause attached for logging.
func Error(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(apperr.HTTPStatus(err), appErr.Message).SetInternal(err)
	}
	return echo.ErrInternalServerError.SetInternal(err)
}
