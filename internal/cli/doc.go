// Package cli holds the logic behind the parley commands: loading a menu,
// assembling an engine from configuration and running it on a terminal, over
// HTTP or as an MCP server. Command wiring lives in cmd/parley.
package cli
