package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// shutdownGrace bounds how long in-flight HTTP requests may drain after
// the context is cancelled.
const shutdownGrace = 5 * time.Second

// Server exposes the knowledge base to MCP clients. It is tools-only:
// retrieval, ask and stats are registered as typed tools and no resources
// or prompts are served.
type Server struct {
	ports *Ports
	mcp   *mcp.Server
}

// NewServer wires a tools-only MCP server around the given ports. The
// version string identifies the ragdex build to clients; empty means "dev".
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if version == "" {
		version = "dev"
	}

	s := &Server{
		ports: ports,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "ragdex",
			Title:   "Ragdex knowledge base",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Serve runs the server until ctx is cancelled. An empty addr speaks
// JSON-RPC over stdio; otherwise streamable HTTP is served on addr, with
// in-flight requests drained on shutdown.
func (s *Server) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpServer.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}
