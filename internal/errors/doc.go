// Package errors provides error handling conventions for the mcpgen CLI.
//
// The package re-exports the wrapping helpers of cockroachdb/errors, defines
// sentinel errors for the failure classes of a compilation run, and an
// ExitError type for CLI exit code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrEnvironmentFormat) {
//	    // the .env file was rejected; nothing was written
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (registry, .env file, configuration)
//   - ExitSystem (2): System-related error (I/O, permissions)
//
// [Classify] maps any error returned by a command to an [ExitError].
package errors
