package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind to (e.g., ":8080").
	Addr string

	// DisableStreaming serves plain request/response instead of
	// streaming, for compatibility with certain clients.
	DisableStreaming bool

	// HealthChecker registers probe endpoints when set.
	HealthChecker *HealthChecker
}

// HTTPServer exposes the MCP server over streamable HTTP on /mcp,
// alongside the Kubernetes probe endpoints.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	config     HTTPServerConfig
	httpServer *http.Server
}

// NewHTTPServer creates a new HTTP transport server for the given MCP server.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	return &HTTPServer{
		mcpServer: mcpSrv,
		config:    config,
	}
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *HTTPServer) Start() error {
	mux := http.NewServeMux()

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)
	mux.Handle("/mcp", streamable)

	if s.config.HealthChecker != nil {
		s.config.HealthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
