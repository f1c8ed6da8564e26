package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

// New instantiates a fresh GraphQL schema for
// snipframe's API.
func New(downloads *download.Manager, themes *theme.Manager) graphql.SchemaConfig {
	return graphql.SchemaConfig{
		Query: graphql.NewObject(
			graphql.ObjectConfig{
				Name:   "Query",
				Fields: fields(downloads, themes),
			},
		),
	}
}

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ExportStats",
	Fields: graphql.Fields{
		"queued":     &graphql.Field{Type: graphql.Int},
		"processing": &graphql.Field{Type: graphql.Int},
		"completed":  &graphql.Field{Type: graphql.Int},
		"failed":     &graphql.Field{Type: graphql.Int},
		"expired":    &graphql.Field{Type: graphql.Int},
		"totalFiles": &graphql.Field{Type: graphql.Int},
		"totalSize":  &graphql.Field{Type: graphql.Int},
	},
})

var themeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Theme",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.String},
		"name": &graphql.Field{Type: graphql.String},
		"type": &graphql.Field{Type: graphql.String},
	},
})

func fields(downloads *download.Manager, themes *theme.Manager) graphql.Fields {
	return graphql.Fields{
		"stats": &graphql.Field{
			Type: statsType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				stats := downloads.Stats()
				return map[string]interface{}{
					"queued":     stats.Queued,
					"processing": stats.Processing,
					"completed":  stats.Completed,
					"failed":     stats.Failed,
					"expired":    stats.Expired,
					"totalFiles": stats.TotalFiles,
					"totalSize":  int(stats.TotalSize),
				}, nil
			},
		},
		"themes": &graphql.Field{
			Type: graphql.NewList(themeType),
			Args: graphql.FieldConfigArgument{
				"type": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				var list []theme.Theme
				if typ, ok := p.Args["type"].(string); ok && typ != "" {
					list = themes.ListByType(theme.Type(typ))
				} else {
					list = themes.List()
				}

				out := make([]map[string]interface{}, 0, len(list))
				for _, t := range list {
					out = append(out, map[string]interface{}{
						"id":   t.ID,
						"name": t.Name,
						"type": string(t.Type),
					})
				}
				return out, nil
			},
		},
	}
}
