// Package rest binds the versioned REST endpoints.
package rest

import (
	"github.com/labstack/echo/v4"

	exportctl "github.com/snipframe-cloud/snipframe/api/rest/controller/export"
	sessionctl "github.com/snipframe-cloud/snipframe/api/rest/controller/session"
	snippetctl "github.com/snipframe-cloud/snipframe/api/rest/controller/snippet"
	themectl "github.com/snipframe-cloud/snipframe/api/rest/controller/theme"
	"github.com/snipframe-cloud/snipframe/api/rest/middleware"
	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/session"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/ratelimit"
)

// Deps carries the services the REST controllers depend on.
type Deps struct {
	Downloads *download.Manager
	Themes    *theme.Manager
	Sessions  *session.Manager
	Limiter   *ratelimit.Limiter
}

// Bind the REST endpoints to the versioned endpoint group.
func Bind(group *echo.Group, deps Deps) {
	group.Use(middleware.RateLimit(deps.Limiter))

	group.POST("/export", exportctl.Post(deps.Downloads, deps.Themes))
	group.GET("/export/options", exportctl.Options())
	group.GET("/export/stats", exportctl.Stats(deps.Downloads))
	group.GET("/export/:id", exportctl.Get(deps.Downloads))
	group.GET("/export/:id/download", exportctl.Download(deps.Downloads))

	group.GET("/themes", themectl.List(deps.Themes))
	group.POST("/themes", themectl.Post(deps.Themes))
	group.POST("/themes/customize", themectl.Customize(deps.Themes))
	group.POST("/themes/validate-color", themectl.ValidateColor())
	group.GET("/themes/:id", themectl.Get(deps.Themes))

	group.POST("/snippets/process", snippetctl.Process())
	group.GET("/languages", snippetctl.Languages())

	group.POST("/sessions", sessionctl.Post(deps.Sessions))
	group.GET("/sessions/:id", sessionctl.Get(deps.Sessions))
	group.DELETE("/sessions/:id", sessionctl.Delete(deps.Sessions))
	group.PUT("/sessions/:id/data/:key", sessionctl.PutValue(deps.Sessions))
	group.GET("/sessions/:id/data/:key", sessionctl.GetValue(deps.Sessions))
}
