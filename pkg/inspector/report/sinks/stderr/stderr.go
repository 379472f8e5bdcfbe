// Package stderr provides a sink that renders reports to stderr in
// human-readable format. Useful for development and debugging.
package stderr

import (
	"context"
	"fmt"
	"os"

	"github.com/narrowspark/exception-inspector/pkg/inspector/report"
)

// StderrSinkOption configures the stderr sink.
type StderrSinkOption func(*stderrSinkConfig)

type stderrSinkConfig struct {
	verbose bool
}

// WithVerbose enables full report details including source snippets.
func WithVerbose() StderrSinkOption {
	return func(c *stderrSinkConfig) {
		c.verbose = true
	}
}

// stderrSink writes reports to stderr in human-readable format.
type stderrSink struct {
	verbose bool
}

// NewStderrSink creates a sink that writes to stderr.
func NewStderrSink(opts ...StderrSinkOption) report.Sink {
	cfg := &stderrSinkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrSink{
		verbose: cfg.verbose,
	}
}

// Write formats and outputs the report to stderr.
func (s *stderrSink) Write(ctx context.Context, rep report.Report) error {
	// Header line
	// Format: [INSPECTOR] <timestamp> <exception name> (code <code>)
	timestamp := rep.Timestamp.Format("2006-01-02T15:04:05Z07:00")

	header := fmt.Sprintf("[INSPECTOR] %s %s", timestamp, rep.ExceptionName)
	if rep.Code != 0 {
		header += fmt.Sprintf(" (code %d)", rep.Code)
	}
	if rep.RequestID != "" {
		header += fmt.Sprintf(" (request: %s)", rep.RequestID)
	}
	fmt.Fprintln(os.Stderr, header)

	// Message line
	if rep.Message != "" {
		fmt.Fprintf(os.Stderr, "        Message: %s\n", rep.Message)
	}

	// Documentation link
	if rep.DocrefURL != "" {
		fmt.Fprintf(os.Stderr, "        Docs: %s\n", rep.DocrefURL)
	}

	// Fingerprint line
	if rep.Fingerprint != "" {
		fmt.Fprintf(os.Stderr, "        Fingerprint: %s\n", rep.Fingerprint)
	}

	// Frame list
	for i, frame := range rep.Frames {
		s.writeFrame(i, frame)
	}

	// Remaining causes, nearest first
	for i, msg := range rep.CauseMessages {
		code := 0
		if i < len(rep.CauseCodes) {
			code = rep.CauseCodes[i]
		}
		if code != 0 {
			fmt.Fprintf(os.Stderr, "        Caused by: %s (code %d)\n", msg, code)
		} else {
			fmt.Fprintf(os.Stderr, "        Caused by: %s\n", msg)
		}
	}

	return nil
}

// writeFrame renders one frame record.
func (s *stderrSink) writeFrame(index int, frame report.FrameRecord) {
	// Splice-point comments come before the frame they annotate, so a
	// merged cause chain reads top-down like nested tracebacks.
	for _, c := range frame.Comments {
		fmt.Fprintf(os.Stderr, "        -- %s %s\n", c.Context, c.Comment)
	}

	location := "[internal]"
	if frame.File != "" {
		location = fmt.Sprintf("%s:%d", frame.File, frame.Line)
	}

	name := frame.Function
	if frame.Class != "" {
		name = frame.Class + "::" + frame.Function
	}

	marker := " "
	if frame.Application {
		marker = "*"
	}

	fmt.Fprintf(os.Stderr, "        %s#%-2d %s %s\n", marker, index, location, name)

	if s.verbose && len(frame.Snippet) > 0 {
		for i, line := range frame.Snippet {
			lineNo := frame.SnippetStart + i + 1
			pointer := "   "
			if lineNo == frame.Line {
				pointer = ">> "
			}
			fmt.Fprintf(os.Stderr, "            %s%4d | %s\n", pointer, lineNo, line)
		}
	}
}

// Flush is a no-op for stderr sink.
func (s *stderrSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for stderr sink.
func (s *stderrSink) Close() error {
	return nil
}
