// Package cmd implements the command-line interface for frontdesk.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing scheduling, document search,
//     and collateral generation tools
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
