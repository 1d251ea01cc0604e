// Package driving defines the inbound port interfaces through which
// adapters (MCP server, CLI) drive the core: retrieval and tool dispatch.
package driving
