// Package shared holds helpers used across gradecli packages that do not
// belong to any single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on log records
//   - Sample roster and score fixtures with their expected report
//   - WriteSampleInputs / WriteInputs for temp-dir input files
//
// Example usage:
//
//	func TestPipeline(t *testing.T) {
//	    in := testutil.WriteSampleInputs(t)
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "report written")
//	}
//
// Nothing in this package may import business packages.
package shared
