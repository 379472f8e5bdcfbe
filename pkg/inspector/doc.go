// Package inspector normalizes captured exception traces into a
// structured, queryable sequence of stack frames.
//
// Given a Throwable (an error carrying its origin position, a numeric
// code, a causal predecessor, and a raw backtrace), the Inspector
// produces a clean FrameCollection: error-handler plumbing is trimmed,
// a synthetic origin frame is placed on top, and the traces of chained
// causes are spliced beneath the outer exception's unique frames so a
// nested chain renders as one continuous, non-duplicated trace.
//
// # Core Components
//
//   - RawFrame: one captured call-site record (file, line, class, function, args)
//   - Frame: a RawFrame plus derived accessors, source retrieval, and diagnostic comments
//   - FrameCollection: an ordered, externally read-only list of Frames with
//     filter/map transforms and the tail-anchored top-diff merge
//   - Inspector: per-exception orchestrator producing the merged collection
//     and chain-wide views of the causal predecessors
//
// # Quick Start
//
//	err := inspector.NewException("db timeout",
//	    inspector.WithCode(408),
//	    inspector.WithCause(cause),
//	)
//	insp := inspector.New(err)
//	for _, frame := range insp.Frames().Frames() {
//	    fmt.Printf("%s:%d %s\n", frame.File(), frame.Line(), frame.Function())
//	}
//
// # Design Principles
//
//   - The wrapped exception is never mutated; all derived views are lazy and cached
//   - Missing source context degrades to absence, never to an error
//   - Misuse of the read-only collection surface is a programming error and panics
//     with a typed error value
package inspector
