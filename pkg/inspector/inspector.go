// inspector.go orchestrates trace normalization and the causal merge
// for one throwable, with lazily computed, cached derived views.

package inspector

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// maxCauseDepth bounds causal-chain traversal. Well-formed chains are
// finite and acyclic; a malformed self-referential chain yields a
// truncated chain instead of unbounded recursion.
const maxCauseDepth = 64

// indirectionMarker identifies dynamic-dispatch helper frames whose
// successors carry the position information the helper frame lost.
const indirectionMarker = "call_user_func"

// spliceCommentContext labels the comment attached to the frame where a
// cause's trace begins in a merged collection.
const spliceCommentContext = "Exception message:"

// docrefPattern matches the documentation-reference link syntax some
// runtimes embed in generated messages.
var docrefPattern = regexp.MustCompile(`\[<a href='([^']+)'>[^<]*</a>\]`)

// Option configures an Inspector.
type Option func(*Inspector)

// WithDocref supplies the two runtime settings gating doc-reference URL
// extraction. Both must be non-empty for ExceptionDocrefURL to report
// a URL; otherwise the feature is treated as not applicable. Child
// inspectors inherit the settings.
func WithDocref(root, ext string) Option {
	return func(i *Inspector) {
		i.docrefRoot = root
		i.docrefExt = ext
	}
}

// Inspector wraps one Throwable and exposes its normalized frames and
// chain-wide views of its causal predecessors. All derived values are
// computed on first access and cached; concurrent first access computes
// at most once.
type Inspector struct {
	mu  sync.Mutex
	exc Throwable

	depth      int
	docrefRoot string
	docrefExt  string

	frames *FrameCollection

	message         string
	docrefURL       string
	messageResolved bool

	prevInspector *Inspector
	prevResolved  bool

	prevChain         []Throwable
	prevChainResolved bool
}

// New creates an Inspector over the given throwable.
func New(exc Throwable, opts ...Option) *Inspector {
	i := &Inspector{exc: exc}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Exception returns the wrapped throwable, unchanged.
func (i *Inspector) Exception() Throwable {
	return i.exc
}

// ExceptionName returns a stable, human-readable identifier for the
// throwable's concrete type.
func (i *Inspector) ExceptionName() string {
	target := any(i.exc)
	if foreign, ok := i.exc.(*foreignThrowable); ok {
		target = foreign.err
	}
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// ExceptionMessage returns the throwable's message with the first
// embedded doc-reference link stripped out.
func (i *Inspector) ExceptionMessage() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.messageLocked()
}

// ExceptionDocrefURL returns the URL of the embedded doc-reference
// link, or "" when the message carries none or the docref settings are
// not configured.
func (i *Inspector) ExceptionDocrefURL() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.docrefRoot == "" || i.docrefExt == "" {
		return ""
	}
	i.messageLocked()
	return i.docrefURL
}

func (i *Inspector) messageLocked() string {
	if !i.messageResolved {
		i.message, i.docrefURL = extractDocref(i.exc.Error())
		i.messageResolved = true
	}
	return i.message
}

// extractDocref splits a message into its text with the first
// doc-reference link removed, and the link's URL ("" when absent).
func extractDocref(message string) (stripped, url string) {
	m := docrefPattern.FindStringSubmatch(message)
	if m == nil {
		return message, ""
	}
	return strings.Replace(message, m[0], "", 1), m[1]
}

// HasPreviousException reports whether a causal predecessor exists.
func (i *Inspector) HasPreviousException() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.prevResolved {
		return i.prevInspector != nil
	}
	return i.exc.Unwrap() != nil
}

// PreviousExceptionInspector returns an Inspector over the causal
// predecessor, or nil when there is none. The child inspector is
// created on first call and cached; it inherits the docref settings.
func (i *Inspector) PreviousExceptionInspector() *Inspector {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.previousInspectorLocked()
}

func (i *Inspector) previousInspectorLocked() *Inspector {
	if i.prevResolved {
		return i.prevInspector
	}
	i.prevResolved = true
	if i.depth+1 >= maxCauseDepth {
		return nil
	}
	prev := asThrowable(i.exc.Unwrap())
	if prev == nil {
		return nil
	}
	i.prevInspector = &Inspector{
		exc:        prev,
		depth:      i.depth + 1,
		docrefRoot: i.docrefRoot,
		docrefExt:  i.docrefExt,
	}
	return i.prevInspector
}

// PreviousExceptions returns the causal predecessors in order, nearest
// first. The result is empty when the throwable has no predecessor.
func (i *Inspector) PreviousExceptions() []Throwable {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.previousExceptionsLocked()
}

func (i *Inspector) previousExceptionsLocked() []Throwable {
	if i.prevChainResolved {
		return i.prevChain
	}
	i.prevChainResolved = true
	cur := asThrowable(i.exc.Unwrap())
	for depth := i.depth; cur != nil && depth+1 < maxCauseDepth; depth++ {
		i.prevChain = append(i.prevChain, cur)
		cur = asThrowable(cur.Unwrap())
	}
	return i.prevChain
}

// PreviousExceptionMessages returns the predecessors' messages, each
// with its doc-reference link stripped, in PreviousExceptions order.
func (i *Inspector) PreviousExceptionMessages() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	chain := i.previousExceptionsLocked()
	out := make([]string, len(chain))
	for k, exc := range chain {
		out[k], _ = extractDocref(exc.Error())
	}
	return out
}

// PreviousExceptionCodes returns the predecessors' codes in
// PreviousExceptions order.
func (i *Inspector) PreviousExceptionCodes() []int {
	i.mu.Lock()
	defer i.mu.Unlock()
	chain := i.previousExceptionsLocked()
	out := make([]int, len(chain))
	for k, exc := range chain {
		out[k] = exc.Code()
	}
	return out
}

// Frames returns the normalized frame collection for the wrapped
// throwable: positions filled forward across indirection frames,
// error-handler plumbing trimmed, a synthetic origin frame on top and,
// when a causal predecessor exists, the predecessor's frames spliced
// beneath this throwable's unique top frames. Computed once and cached.
func (i *Inspector) Frames() *FrameCollection {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.framesLocked()
}

func (i *Inspector) framesLocked() *FrameCollection {
	if i.frames != nil {
		return i.frames
	}

	raw := fillPositions(i.exc.StackTrace())
	raw = trimHandlerFrames(raw, i.exc.File(), i.exc.Line())

	origin := RawFrame{
		File:  i.exc.File(),
		Line:  i.exc.Line(),
		Class: i.ExceptionName(),
		Args:  []any{i.messageLocked()},
	}
	frames := NewFrameCollection(append([]RawFrame{origin}, raw...))

	if prev := i.previousInspectorLocked(); prev != nil {
		merged := prev.Frames().clone()
		if merged.Count() > 0 {
			merged.At(0).AddComment(i.messageLocked(), spliceCommentContext)
		}
		merged.PrependFrames(frames.TopDiff(merged))
		frames = merged
	}

	i.frames = frames
	return frames
}

// fillPositions repairs raw frames that lost their position: a frame
// with no file takes the file and line of its successor when that
// successor is a dynamic-dispatch indirection carrying both, and falls
// back to the "[internal]" sentinel at line 0 otherwise. The input is
// not modified.
func fillPositions(frames []RawFrame) []RawFrame {
	out := make([]RawFrame, len(frames))
	copy(out, frames)

	for k := range out {
		if out[k].File != "" {
			continue
		}
		if k+1 < len(out) {
			next := out[k+1]
			if next.File != "" && next.Line != 0 &&
				strings.Contains(strings.ToLower(next.Function), indirectionMarker) {
				out[k].File = next.File
				out[k].Line = next.Line
				continue
			}
		}
		out[k].File = fileInternal
		out[k].Line = 0
	}
	return out
}

// trimHandlerFrames discards leading frames that are error-handler
// artifacts: everything before the highest-indexed frame whose file and
// line match the throwable's own origin re-enters user code at the true
// throw site.
func trimHandlerFrames(frames []RawFrame, file string, line int) []RawFrame {
	idx := 0
	for k, f := range frames {
		if f.File == file && f.Line == line {
			idx = k
		}
	}
	return frames[idx:]
}
