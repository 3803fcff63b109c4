// Package common provides shared utilities for MCP tool handlers,
// including account extraction from request arguments and instrumented
// handler wrappers that record metrics and audit logs.
package common
