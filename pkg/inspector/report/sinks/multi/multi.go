// Package multi provides a sink that fans out to multiple sinks.
// All sinks receive all reports; errors are aggregated.
package multi

import (
	"context"
	"errors"

	"github.com/narrowspark/exception-inspector/pkg/inspector/report"
)

// multiSink fans out to multiple sinks.
type multiSink struct {
	sinks []report.Sink
}

// NewMultiSink creates a sink that writes to multiple sinks.
// All sinks receive all reports. Errors are aggregated via errors.Join.
func NewMultiSink(sinks ...report.Sink) report.Sink {
	return &multiSink{
		sinks: sinks,
	}
}

// Write sends the report to all sinks, collecting any errors.
// All sinks are called even if some return errors.
func (s *multiSink) Write(ctx context.Context, rep report.Report) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, rep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush calls Flush on all sinks, collecting any errors.
func (s *multiSink) Flush(ctx context.Context) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on all sinks, collecting any errors.
func (s *multiSink) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
