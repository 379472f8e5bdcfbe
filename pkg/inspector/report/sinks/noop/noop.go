// Package noop provides a no-operation sink that discards all reports.
// Useful for testing and for disabling exception reporting.
package noop

import (
	"context"

	"github.com/narrowspark/exception-inspector/pkg/inspector/report"
)

// noopSink discards all reports.
type noopSink struct{}

// NewNoopSink creates a sink that discards all reports.
// All methods return nil and perform no operations.
func NewNoopSink() report.Sink {
	return &noopSink{}
}

// Write discards the report and returns nil.
func (s *noopSink) Write(ctx context.Context, rep report.Report) error {
	return nil
}

// Flush is a no-op and returns nil.
func (s *noopSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op and returns nil.
func (s *noopSink) Close() error {
	return nil
}
