// Package config loads mcpgen's own settings.
//
// The file is config.yaml, searched in $MCPGEN_CONFIG_DIR, the working
// directory and <ConfigHome>/mcpgen, in that order. Every key can also be set
// through an MCPGEN_ environment variable (MCPGEN_REGISTRY, MCPGEN_ENV_FILE,
// MCPGEN_BACKUP_RETENTION, ...).
//
//	version: 1
//	registry: servers.yaml
//	env_file: .env
//	clients:
//	  claude-desktop:
//	    enabled: true
//	  cursor:
//	    path: ~/work/.cursor/mcp.json
//	backup:
//	  enabled: true
//	  retention: 5
//	  dir: ~/.local/share/mcpgen/backups
//	overrides:
//	  archetype:
//	    heroku: privileged
//	  cmd:
//	    heroku: ["--stdio"]
//
// Viper lower-cases map keys, so override tables only match lower-case
// server ids.
//
// Load validates the result and returns a [ValidationError] listing every
// problem at once.
package config
