// Package driving provides interfaces for the use cases exposed to the CLI,
// TUI and MCP adapters (primary/inbound ports).
package driving
