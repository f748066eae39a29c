// Package shared holds code used across packages that belongs to no single
// pipeline stage. Its testutil subpackage captures slog records so tests can
// assert on what a component logged.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    runThing(logger)
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "done")
//	}
package shared
