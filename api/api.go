// Package api exposes the HTTP surface: health, metrics, GraphQL and
// the versioned REST endpoints.
package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/gql"
	rest "github.com/snipframe-cloud/snipframe/api/rest/v1"
	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/session"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/env"
	"github.com/snipframe-cloud/snipframe/pkg/ratelimit"
)

// Deps carries the services the HTTP surface exposes.
type Deps struct {
	Downloads *download.Manager
	Themes    *theme.Manager
	Sessions  *session.Manager
	Limiter   *ratelimit.Limiter
}

var server *echo.Echo

// Start launches the snipframe API.
func Start(deps Deps) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// health
	e.GET("/health", Health(deps.Downloads))

	// metrics
	prometheus.NewPrometheus("snipframe", nil).Use(e)

	// REST
	rest.Bind(e.Group("/v1"), rest.Deps{
		Downloads: deps.Downloads,
		Themes:    deps.Themes,
		Sessions:  deps.Sessions,
		Limiter:   deps.Limiter,
	})

	// GraphQL
	e.GET("/gql", gql.Handler(deps.Downloads, deps.Themes))

	server = e
	return e.Start(fmt.Sprintf(":%v", env.Variables().Port))
}

// Shutdown drains the server.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
