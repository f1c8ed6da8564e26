// Package gql exposes a read-only GraphQL view over the export stats
// and theme catalog.
package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/api/gql/schema"
	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// Handler wraps the GraphQL schema and makes it injectable
// into the echo HTTP framework.
func Handler(downloads *download.Manager, themes *theme.Manager) echo.HandlerFunc {
	compiled, err := graphql.NewSchema(schema.New(downloads, themes))
	if err != nil {
		panic(err)
	}

	return echo.WrapHandler(
		handler.New(
			&handler.Config{
				Schema:   &compiled,
				Pretty:   true,
				GraphiQL: true,
			},
		),
	)
}
