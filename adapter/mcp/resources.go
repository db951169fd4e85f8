package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

// RegisterResources registers MCP resources that expose What's Next data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("whatsnext://suggestions").
		Name("Suggestions").
		Description("What to do right now, best first").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.GetSuggestionsHandler == nil {
				return nil, errNoApp
			}
			suggestions, err := app.GetSuggestionsHandler.Handle(ctx, suggestionQueries.GetSuggestionsQuery{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, suggestions)
		})

	srv.Resource("whatsnext://contexts/active").
		Name("Active contexts").
		Description("Contexts whose day and time window contain the current moment").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.GetActiveContextsHandler == nil {
				return nil, errNoApp
			}
			contexts, err := app.GetActiveContextsHandler.Handle(ctx, time.Time{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, contexts)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
