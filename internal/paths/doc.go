// Package paths provides cross-platform path resolution for mcpgen's own
// directories and for the client configuration files it writes.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg, so the application config lives in
// <ConfigHome>/mcpgen and backups in <DataHome>/mcpgen/backups.
//
// # Client Configuration Files
//
//	| Client         | Default path                                     |
//	|----------------|--------------------------------------------------|
//	| claude-desktop | <ConfigHome>/Claude/claude_desktop_config.json   |
//	| cursor         | ~/.cursor/mcp.json                               |
//
// Both paths may be overridden in config.yaml; see package config.
package paths
