// Package resources exposes the document corpus as MCP resources so
// clients can browse the knowledge base directly instead of going
// through the search tool.
package resources
