// Package server holds the shared runtime state of the frontdesk MCP
// server.
//
// ServerContext owns per-account Google API clients (Calendar, Drive,
// Gmail), the knowledge base snapshot store, the AI provider, and the
// configuration the tool handlers need (home zone, calendar ID, delivery
// fallback address). Clients are created lazily on first use and cached
// for the lifetime of the server.
//
// The package also provides the health check endpoints used by
// Kubernetes probes and a dedicated Prometheus metrics server.
package server
