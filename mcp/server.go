// Package mcp exposes the documentation service to AI assistants over
// the Model Context Protocol.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "1.0.0"

// serverName identifies the server to MCP clients.
const serverName = "ampdocs"

// Config holds the services the server exposes.
type Config struct {
	// Documents and Search are required.
	Documents ampdocs.DocumentService
	Search    ampdocs.SearchService

	// Runs, when set, adds last-crawl information to getStats.
	Runs ampdocs.CrawlRunService

	// SessionSize bounds the per-server search history used for
	// struggling-user detection. Zero uses the default.
	SessionSize int
}

// Server is the MCP server for the documentation store.
type Server struct {
	documents ampdocs.DocumentService
	search    ampdocs.SearchService
	runs      ampdocs.CrawlRunService
	session   *ampdocs.Session
	server    *mcp.Server
}

// NewServer creates a new MCP server with the given services. The
// server owns one search session; all tool calls served by this
// instance share it.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Documents == nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "document service required")
	}
	if cfg.Search == nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "search service required")
	}

	impl := &mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}

	s := &Server{
		documents: cfg.Documents,
		search:    cfg.Search,
		runs:      cfg.Runs,
		session:   ampdocs.NewSession(cfg.SessionSize),
		server:    mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the specified
// address. It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
