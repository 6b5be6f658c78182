// Package backup keeps copies of client config files before mcpgen replaces
// them.
//
// Each backup holds a single file and a manifest with the file's SHA256
// hash, stored under the data home:
//
//	<DataHome>/mcpgen/backups/
//	└── {client}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {file}
//
// Backup IDs are UTC timestamps (20260123T100712). A second backup in the
// same second gets a "-N" suffix. After every backup the oldest copies beyond
// the retention count are pruned.
//
// Restore verifies the stored hash and writes the file back atomically:
//
//	mgr := backup.NewManager(backup.WithRetentionCount(3))
//	m, err := mgr.Backup(paths.ClientCursor, "~/.cursor/mcp.json")
//	...
//	_, err = mgr.Restore(paths.ClientCursor, m.ID)
package backup
