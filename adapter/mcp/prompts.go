package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("whats_next").
		Description("Pick the next thing to do from the current suggestions and log it when done.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "What's next",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me decide what to do now. Please:

1. Read the whatsnext://suggestions resource, or call suggestions.get
2. Check which contexts are active with context.active

Then:
- Recommend one activity and explain the reasons it was suggested
- Offer one alternative with a different energy level
- When I say I did it, call activity.complete with its ID`,
						},
					},
				},
			}, nil
		})

	return nil
}
