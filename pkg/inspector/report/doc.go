// Package report turns inspected exceptions into pluggable, persisted
// error reports.
//
// The reporter runs an inspector over a throwable, flattens the merged
// frame collection into a Report, stamps identity fields (UUID event
// ID, timestamp, grouping fingerprint), optionally scrubs sensitive
// data, and hands the result to a Sink.
//
// # Quick Start
//
//	reporter := report.NewReporter(
//	    report.WithSink(stderr.NewStderrSink(stderr.WithVerbose())),
//	    report.WithDefaultScrubbing(),
//	)
//	defer report.Recover(ctx, reporter)
//
// # Design Principles
//
//   - Reporting never aborts the caller: Recover swallows record errors
//   - Fail-closed scrubbing: suspicious message content is redacted, never persisted raw
//   - Zero-dependency rendering: sinks format with the standard library only
package report
