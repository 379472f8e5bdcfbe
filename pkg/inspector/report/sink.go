// sink.go defines the Sink interface for report destinations.

package report

import "context"

// Sink is the destination for exception reports.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Write persists a report. Called after scrubbing/enrichment.
	// Implementations should be idempotent when possible.
	Write(ctx context.Context, report Report) error

	// Flush ensures any buffered reports are persisted.
	// For synchronous sinks, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the sink.
	// After Close is called, Write and Flush should return errors.
	Close() error
}
