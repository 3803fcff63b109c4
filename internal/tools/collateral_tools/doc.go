// Package collateral_tools provides the generate_collateral MCP tool:
// AI-drafted marketing collateral grounded in the document corpus,
// delivered through the cloud-doc / email / inline fallback chain.
package collateral_tools
