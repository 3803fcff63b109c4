// Package knowledge_tools provides MCP tools over the local document
// corpus: keyword search and corpus reload.
package knowledge_tools
