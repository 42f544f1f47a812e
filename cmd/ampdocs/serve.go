package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	sessionSize := 0
	if deps.Config != nil {
		sessionSize = deps.Config.Search.SessionSize
	}

	server, err := mcp.NewServer(mcp.Config{
		Documents:   deps.Documents,
		Search:      deps.Search,
		Runs:        deps.Runs,
		SessionSize: sessionSize,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	if c.HTTP != "" {
		// Stdout belongs to the stdio transport, so status goes to stderr.
		fmt.Fprintf(deps.Stderr, "Serving MCP over HTTP on %s\n", c.HTTP)
		return server.RunHTTP(deps.Ctx, c.HTTP)
	}
	return server.Run(deps.Ctx)
}
