// throwable.go defines the input boundary (Throwable, RawFrame) and a
// concrete Exception implementation that captures its trace at
// construction time.

package inspector

import (
	"errors"
	"runtime"
	"strings"
)

// RawFrame is one captured call-site record. It is treated as immutable
// evidence: the inspector copies raw frames before normalizing them.
//
// Optional fields use their zero value for "absent": an empty File,
// Class, or Function means the capture did not record one, and Line
// defaults to 0.
type RawFrame struct {
	// File is the source file of the call site.
	File string

	// Line is the line number within File.
	Line int

	// Class qualifies Function (a type or package qualifier).
	Class string

	// Function is the function or method name.
	Function string

	// Args holds the call arguments, when the capture recorded them.
	Args []any
}

// Throwable is the exception-like value the inspector consumes.
//
// Unwrap returns the causal predecessor, if any, and should follow the
// standard library convention so errors.Is/As traversal keeps working.
// A predecessor that is a plain error (not a Throwable) is still walked:
// it is adapted into a throwable with no position and no trace.
type Throwable interface {
	error

	// Code returns a stable numeric code classifying the exception.
	Code() int

	// File returns the source file where the exception originated.
	File() string

	// Line returns the line where the exception originated.
	Line() int

	// StackTrace returns the raw backtrace captured at throw time,
	// ordered from the throw site outward.
	StackTrace() []RawFrame

	// Unwrap returns the causal predecessor, or nil.
	Unwrap() error
}

// maxTraceDepth bounds stack capture on construction.
const maxTraceDepth = 64

// Exception is the native Throwable implementation. It records message,
// code, cause, and a raw trace captured via runtime.Callers at the
// construction site.
type Exception struct {
	message string
	code    int
	file    string
	line    int
	trace   []RawFrame
	cause   error
}

// ExceptionOption configures an Exception.
type ExceptionOption func(*exceptionConfig)

type exceptionConfig struct {
	code  int
	cause error
	skip  int
}

// WithCode sets the numeric code.
func WithCode(code int) ExceptionOption {
	return func(c *exceptionConfig) {
		c.code = code
	}
}

// WithCause sets the causal predecessor.
func WithCause(cause error) ExceptionOption {
	return func(c *exceptionConfig) {
		c.cause = cause
	}
}

// WithStackSkip skips additional call frames during capture, for
// helpers that construct exceptions on behalf of their caller.
func WithStackSkip(skip int) ExceptionOption {
	return func(c *exceptionConfig) {
		if skip > 0 {
			c.skip = skip
		}
	}
}

// NewException creates an Exception whose origin position and raw trace
// are captured at the call site.
func NewException(message string, opts ...ExceptionOption) *Exception {
	cfg := &exceptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	trace := captureTrace(cfg.skip + 1)

	e := &Exception{
		message: message,
		code:    cfg.code,
		cause:   cfg.cause,
	}
	// The first resolved frame is the construction site: it becomes the
	// origin position, and the trace starts at the caller, matching the
	// raw-trace shape the inspector consumes (the inspector synthesizes
	// the origin frame itself).
	if len(trace) > 0 {
		e.file = trace[0].File
		e.line = trace[0].Line
		e.trace = trace[1:]
	}
	return e
}

// Error returns the exception message.
func (e *Exception) Error() string { return e.message }

// Code returns the numeric code.
func (e *Exception) Code() int { return e.code }

// File returns the origin file.
func (e *Exception) File() string { return e.file }

// Line returns the origin line.
func (e *Exception) Line() int { return e.line }

// StackTrace returns the captured raw trace.
func (e *Exception) StackTrace() []RawFrame { return e.trace }

// Unwrap returns the causal predecessor.
func (e *Exception) Unwrap() error { return e.cause }

// captureTrace resolves the current call stack into RawFrames, skipping
// 'skip' frames below NewException.
//
// Skip accounting: +2 covers runtime.Callers itself and captureTrace,
// so skip=1 from NewException places the first recorded frame at the
// NewException call site. CallersFrames is used over FuncForPC so
// inlined frames resolve correctly.
func captureTrace(skip int) []RawFrame {
	pc := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make([]RawFrame, 0, n)
	for {
		fr, more := frames.Next()
		class, function := splitFuncName(fr.Function)
		out = append(out, RawFrame{
			File:     fr.File,
			Line:     fr.Line,
			Class:    class,
			Function: function,
		})
		if !more {
			break
		}
	}
	return out
}

// splitFuncName splits a fully qualified runtime function name into a
// class-like qualifier and a bare function name. The qualifier keeps
// the package path and any method receiver: "pkg/sub.(*T).Do" becomes
// ("pkg/sub.(*T)", "Do") and "pkg/sub.Do" becomes ("pkg/sub", "Do").
func splitFuncName(qualified string) (class, function string) {
	if qualified == "" {
		return "", ""
	}
	// Only the segment after the last slash can contain name dots.
	slash := strings.LastIndex(qualified, "/")
	dot := strings.LastIndex(qualified, ".")
	if dot <= slash {
		return "", qualified
	}
	return qualified[:dot], qualified[dot+1:]
}

// foreignThrowable adapts a plain error into the Throwable shape so the
// causal chain can be walked past non-Throwable links. It has no
// position and no trace.
type foreignThrowable struct {
	err error
}

func (f *foreignThrowable) Error() string          { return f.err.Error() }
func (f *foreignThrowable) Code() int              { return 0 }
func (f *foreignThrowable) File() string           { return "" }
func (f *foreignThrowable) Line() int              { return 0 }
func (f *foreignThrowable) StackTrace() []RawFrame { return nil }
func (f *foreignThrowable) Unwrap() error          { return errors.Unwrap(f.err) }

// asThrowable returns err as a Throwable, adapting plain errors.
func asThrowable(err error) Throwable {
	if err == nil {
		return nil
	}
	if t, ok := err.(Throwable); ok {
		return t
	}
	return &foreignThrowable{err: err}
}
