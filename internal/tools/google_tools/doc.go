// Package google_tools provides MCP tools for the Google OAuth
// authorization flow: obtaining an authorization URL and exchanging the
// resulting code for a token, per account.
package google_tools
