// reporter.go provides the central Reporter interface and default implementation.

package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/narrowspark/exception-inspector/pkg/inspector"
)

// Reporter turns throwables into reports and records them to the
// configured sink.
type Reporter interface {
	// Record inspects the throwable, builds a report, and persists it.
	// Blocks until the sink accepts the report (synchronous).
	Record(ctx context.Context, exc inspector.Throwable) error

	// Flush ensures any buffered reports are persisted.
	// For synchronous reporters, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the reporter.
	Close() error
}

// ReporterOption configures a Reporter.
type ReporterOption func(*reporterConfig)

type reporterConfig struct {
	sink         Sink
	scrubber     *Scrubber
	docrefRoot   string
	docrefExt    string
	snippetLines int
	systemState  bool
	startTime    time.Time
}

// WithSink sets the sink for the reporter.
func WithSink(sink Sink) ReporterOption {
	return func(c *reporterConfig) {
		c.sink = sink
	}
}

// WithScrubber configures the reporter with a custom scrubber configuration.
func WithScrubber(cfg ScrubberConfig) ReporterOption {
	return func(c *reporterConfig) {
		c.scrubber = NewScrubber(cfg)
	}
}

// WithDefaultScrubbing enables scrubbing with production-safe defaults.
func WithDefaultScrubbing() ReporterOption {
	return func(c *reporterConfig) {
		c.scrubber = NewScrubber(DefaultScrubberConfig())
	}
}

// WithDocref passes the doc-reference runtime settings through to the
// inspectors the reporter creates.
func WithDocref(root, ext string) ReporterOption {
	return func(c *reporterConfig) {
		c.docrefRoot = root
		c.docrefExt = ext
	}
}

// WithSourceSnippets captures n source lines around each frame's line,
// when the frame's file is readable.
func WithSourceSnippets(n int) ReporterOption {
	return func(c *reporterConfig) {
		if n > 0 {
			c.snippetLines = n
		}
	}
}

// WithSystemState includes process metrics in every report.
func WithSystemState() ReporterOption {
	return func(c *reporterConfig) {
		c.systemState = true
	}
}

// defaultReporter is the standard Reporter implementation.
type defaultReporter struct {
	cfg reporterConfig
}

// NewReporter creates a new Reporter with the given options.
func NewReporter(opts ...ReporterOption) Reporter {
	cfg := &reporterConfig{startTime: time.Now()}
	for _, opt := range opts {
		opt(cfg)
	}

	// Default to a noop sink if none provided
	if cfg.sink == nil {
		cfg.sink = &noopSinkInternal{}
	}

	return &defaultReporter{cfg: *cfg}
}

// Record builds and persists a report for the throwable.
func (r *defaultReporter) Record(ctx context.Context, exc inspector.Throwable) error {
	insp := inspector.New(exc, inspector.WithDocref(r.cfg.docrefRoot, r.cfg.docrefExt))

	rep := Report{
		EventID:       uuid.NewString(),
		Timestamp:     time.Now(),
		Fingerprint:   "",
		ExceptionName: insp.ExceptionName(),
		Message:       insp.ExceptionMessage(),
		Code:          exc.Code(),
		DocrefURL:     insp.ExceptionDocrefURL(),
		Frames:        r.flattenFrames(insp.Frames()),
		CauseMessages: insp.PreviousExceptionMessages(),
		CauseCodes:    insp.PreviousExceptionCodes(),
	}

	if id, ok := RequestIDFromContext(ctx); ok {
		rep.RequestID = id
	}
	if r.cfg.systemState {
		rep.SystemState = CaptureSystemState(r.cfg.startTime)
	}

	// Apply scrubbing if configured
	if r.cfg.scrubber != nil {
		rep = r.cfg.scrubber.ScrubReport(rep)
	}

	// Generate fingerprint
	rep.Fingerprint = Fingerprint(rep)

	// Write to sink
	return r.cfg.sink.Write(ctx, rep)
}

// flattenFrames converts a frame collection into frame records,
// attaching source snippets when enabled.
func (r *defaultReporter) flattenFrames(frames *inspector.FrameCollection) []FrameRecord {
	out := make([]FrameRecord, 0, frames.Count())
	for _, f := range frames.Frames() {
		record := FrameRecord{
			File:        f.File(),
			Line:        f.Line(),
			Class:       f.Class(),
			Function:    f.Function(),
			Application: f.IsApplication(),
			Comments:    f.Comments(""),
		}
		if r.cfg.snippetLines > 0 && f.Line() > 0 {
			start := f.Line() - 1 - r.cfg.snippetLines/2
			if start < 0 {
				start = 0
			}
			if snippet, err := f.FileLinesRange(start, r.cfg.snippetLines); err == nil && snippet != nil {
				record.Snippet = snippet
				record.SnippetStart = start
			}
		}
		out = append(out, record)
	}
	return out
}

// Flush delegates to the sink.
func (r *defaultReporter) Flush(ctx context.Context) error {
	return r.cfg.sink.Flush(ctx)
}

// Close delegates to the sink.
func (r *defaultReporter) Close() error {
	return r.cfg.sink.Close()
}

// noopSinkInternal is an internal noop sink to avoid import cycles.
type noopSinkInternal struct{}

func (s *noopSinkInternal) Write(ctx context.Context, report Report) error {
	return nil
}

func (s *noopSinkInternal) Flush(ctx context.Context) error {
	return nil
}

func (s *noopSinkInternal) Close() error {
	return nil
}
