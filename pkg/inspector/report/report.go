// report.go defines the canonical exception report data structure.

package report

import (
	"time"

	"github.com/narrowspark/exception-inspector/pkg/inspector"
)

// SystemState captures process metrics at the time a report was built.
type SystemState struct {
	// MemoryBytes is the current memory allocation in bytes.
	MemoryBytes int64

	// GoroutineCount is the number of active goroutines.
	GoroutineCount int

	// UptimeMs is the process uptime in milliseconds.
	UptimeMs int64

	// HostName is the hostname of the machine where the report was built.
	HostName string
}

// FrameRecord is one flattened frame of a normalized collection, ready
// for rendering or persistence.
type FrameRecord struct {
	// File is the source file of the call site ("" when unknown).
	File string

	// Line is the line number within File.
	Line int

	// Class qualifies Function.
	Class string

	// Function is the function or method name.
	Function string

	// Application marks the frame as application code.
	Application bool

	// Comments carries the frame's diagnostic annotations, notably the
	// splice-point message of a merged cause trace.
	Comments []inspector.Comment

	// Snippet holds source lines around Line when snippet capture is
	// enabled; SnippetStart is the zero-based index of Snippet[0] in
	// the file.
	Snippet      []string
	SnippetStart int
}

// Report is the canonical exception representation.
// All fields are populated by the reporter before passing to sinks.
type Report struct {
	// Identity fields

	// EventID is a unique identifier for this report (UUID).
	EventID string

	// Timestamp is when the report was built.
	Timestamp time.Time

	// RequestID is the optional correlation ID taken from the context.
	RequestID string

	// Fingerprint is a hash for grouping similar exceptions.
	Fingerprint string

	// Exception details

	// ExceptionName identifies the exception's concrete type.
	ExceptionName string

	// Message is the human-readable exception message, docref link
	// stripped.
	Message string

	// Code is the exception's numeric code.
	Code int

	// DocrefURL is the documentation-reference URL embedded in the
	// message, when available.
	DocrefURL string

	// Trace

	// Frames is the merged, normalized frame sequence, outermost first.
	Frames []FrameRecord

	// Causal chain

	// CauseMessages holds the predecessors' messages, nearest first.
	CauseMessages []string

	// CauseCodes holds the predecessors' codes, in the same order.
	CauseCodes []int

	// System state

	// SystemState captures process metrics, when enabled.
	SystemState *SystemState
}
