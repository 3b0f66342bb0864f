// Package tracelettest provides testing utilities for applications using the
// tracelet library.
//
// # Span Factories
//
// Build spans and span collections without a Recorder:
//
//	spans := tracelettest.Spans("red", "red", "blue")
//	tracelet.DeduplicateSpanNames(spans)
//
// # Mock Logger
//
// MockLogger captures leveled log records for verification:
//
//	logger := tracelettest.NewMockLogger()
//	rec := tracelet.NewRecorder(tracelet.WithLogger(logger))
//	// ... use rec ...
//	if logger.CountLevel("WARN") != 0 {
//	    t.Errorf("unexpected warnings: %v", logger.Records())
//	}
package tracelettest
