// Package session holds the controllers for editor session endpoints.
package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/rest/controller/respond"
	"github.com/snipframe-cloud/snipframe/internal/session"
)

// Post creates a session.
func Post(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusCreated, sessions.Create())
	}
}

// Get returns a session snapshot, refreshing its idle clock.
func Get(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := sessions.Get(c.Param("id"))
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, s)
	}
}

// Delete ends a session.
func Delete(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessions.Delete(c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	}
}

// SetValueRequest carries one key/value update.
type SetValueRequest struct {
	Value string `json:"value"`
}

// PutValue stores a key on the session.
func PutValue(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req SetValueRequest
		if err := c.Bind(&req); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}

		if err := sessions.SetValue(c.Param("id"), c.Param("key"), req.Value); err != nil {
			return respond.Error(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// GetValue reads a key from the session.
func GetValue(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		value, err := sessions.GetValue(c.Param("id"), c.Param("key"))
		if err != nil {
			return respond.Error(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"value": value})
	}
}
