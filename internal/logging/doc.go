// Package logging provides structured logging for the mcpgen CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.ResolveLevel(verbosity, quiet, os.Getenv("MCPGEN_DEBUG")),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("wrote config", "client", "cursor")
//
// Levels run from [LevelTrace] (one record per generated argument) up to
// Error. A Config.File writer receives a JSON copy of every record.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Context
//
// Commands attach the configured logger to their context with [NewContext];
// library code retrieves it with [FromContext] instead of relying on the
// process-wide default logger.
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
