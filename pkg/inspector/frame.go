// frame.go wraps one raw stack record with derived accessors, source
// retrieval, and a mutable side-channel for diagnostic annotations.

package inspector

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// File sentinels that carry no retrievable source.
const (
	fileUnknown  = "Unknown"
	fileInternal = "[internal]"
)

// evalCodePattern matches synthetic file paths produced by interpreter
// eval/assert contexts, e.g. "/app/foo.php(9) : eval()'d code". The
// captures are the real file and line.
var evalCodePattern = regexp.MustCompile(`^(.*)\((\d+)\) : (?:eval\(\)'d|assert) code$`)

// Comment is one diagnostic annotation attached to a Frame.
type Comment struct {
	// Comment is the annotation text.
	Comment string

	// Context labels the annotation source, e.g. "Exception message:".
	Context string
}

// Frame is a single call-site snapshot. Derived accessors normalize the
// backing raw record at read time; the record itself is rewritten only
// by eval-context unwrapping, at most once.
type Frame struct {
	raw RawFrame

	// comments is append-only.
	comments []Comment

	// application marks frames belonging to application (vs. vendored
	// or runtime) code.
	application bool

	// evalUnwrapped memoizes the eval-context rewrite.
	evalUnwrapped bool

	// contentsLoaded/contents memoize the file read, including failure.
	contentsLoaded bool
	contents       string
	contentsOK     bool
}

// NewFrame wraps one raw stack record.
func NewFrame(raw RawFrame) *Frame {
	return &Frame{raw: raw}
}

// File returns the normalized file path, or "" when absent.
//
// On first call it detects a synthetic eval/assert context path and
// rewrites the stored file and line in place to the real position the
// path reports; subsequent calls see the rewritten values.
func (f *Frame) File() string {
	if !f.evalUnwrapped {
		f.evalUnwrapped = true
		if m := evalCodePattern.FindStringSubmatch(f.raw.File); m != nil {
			f.raw.File = m[1]
			if line, err := strconv.Atoi(m[2]); err == nil {
				f.raw.Line = line
			}
		}
	}
	return f.raw.File
}

// Line returns the line number.
func (f *Frame) Line() int {
	// Force the eval-context rewrite so file and line stay consistent.
	f.File()
	return f.raw.Line
}

// Class returns the class-like qualifier, or "" when absent.
func (f *Frame) Class() string { return f.raw.Class }

// Function returns the function name, or "" when absent.
func (f *Frame) Function() string { return f.raw.Function }

// Args returns the captured call arguments as-is.
func (f *Frame) Args() []any { return f.raw.Args }

// Raw returns the backing record, after any eval-context rewrite.
func (f *Frame) Raw() RawFrame {
	f.File()
	return f.raw
}

// FileContents returns the contents of the frame's file. It returns
// ok=false when the frame has no retrievable file or the read fails;
// a missing source is a normal condition, not an error. The read
// happens once and the outcome is memoized.
func (f *Frame) FileContents() (string, bool) {
	if f.contentsLoaded {
		return f.contents, f.contentsOK
	}
	f.contentsLoaded = true

	file := f.File()
	if file == "" || file == fileUnknown || file == fileInternal {
		return "", false
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}
	f.contents = string(data)
	f.contentsOK = true
	return f.contents, true
}

// FileLines returns the file split on newlines, zero-indexed from the
// first physical line, or nil when the contents are unavailable.
func (f *Frame) FileLines() []string {
	contents, ok := f.FileContents()
	if !ok {
		return nil
	}
	return strings.Split(contents, "\n")
}

// FileLinesRange returns the contiguous viewport [start, start+length)
// of the file's lines. Index 0 is the first physical line of the file;
// start and length only bound the viewport. A negative start is clamped
// to 0. A length lower or equal to 0 is rejected with an
// InvalidLengthError. When the contents are unavailable the result is
// nil with no error.
func (f *Frame) FileLinesRange(start, length int) ([]string, error) {
	if length <= 0 {
		return nil, &InvalidLengthError{Length: length}
	}

	lines := f.FileLines()
	if lines == nil {
		return nil, nil
	}
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		return nil, nil
	}
	end := start + length
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end], nil
}

// AddComment appends a diagnostic annotation. An empty context defaults
// to "global".
func (f *Frame) AddComment(comment, context string) {
	if context == "" {
		context = "global"
	}
	f.comments = append(f.comments, Comment{Comment: comment, Context: context})
}

// Comments returns the annotations in insertion order. A non-empty
// filter restricts the result to annotations with that exact context.
func (f *Frame) Comments(filter string) []Comment {
	if filter == "" {
		out := make([]Comment, len(f.comments))
		copy(out, f.comments)
		return out
	}
	var out []Comment
	for _, c := range f.comments {
		if c.Context == filter {
			out = append(out, c)
		}
	}
	return out
}

// IsApplication reports whether the frame is marked as application code.
func (f *Frame) IsApplication() bool { return f.application }

// SetApplication marks the frame as application code.
func (f *Frame) SetApplication(application bool) {
	f.application = application
}

// Equal reports frame identity: both frames must have a known,
// non-empty file and the identical (file, line) pair. A frame whose
// file is absent or "Unknown" equals nothing.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil {
		return false
	}
	file, otherFile := f.File(), other.File()
	if file == "" || file == fileUnknown || otherFile == "" || otherFile == fileUnknown {
		return false
	}
	return file == otherFile && f.Line() == other.Line()
}
