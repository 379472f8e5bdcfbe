// collection.go holds the ordered, externally read-only frame sequence
// and the cross-exception top-diff merge primitive.

package inspector

// frameCollectionType is the type name reported by read-only violations.
const frameCollectionType = "FrameCollection"

// FrameCollection is an ordered sequence of Frames, read-only from the
// outside: indexed writes and deletes always fail. Filter and Map
// mutate the collection in place and return the receiver for chaining;
// TopDiff leaves both collections logically unchanged.
type FrameCollection struct {
	frames []*Frame
}

// NewFrameCollection wraps each raw record in a Frame, preserving order.
func NewFrameCollection(raw []RawFrame) *FrameCollection {
	frames := make([]*Frame, len(raw))
	for i, r := range raw {
		frames[i] = NewFrame(r)
	}
	return &FrameCollection{frames: frames}
}

// Filter removes frames failing the predicate, re-indexing to a dense
// zero-based order. It mutates the collection and returns it.
func (c *FrameCollection) Filter(predicate func(*Frame) bool) *FrameCollection {
	kept := c.frames[:0]
	for _, f := range c.frames {
		if predicate(f) {
			kept = append(kept, f)
		}
	}
	// Release the tail so dropped frames are not retained.
	for i := len(kept); i < len(c.frames); i++ {
		c.frames[i] = nil
	}
	c.frames = kept
	return c
}

// Map replaces each frame with transform(frame). It mutates the
// collection and returns it. A transform returning nil is a programming
// error and panics with an UnexpectedValueError.
func (c *FrameCollection) Map(transform func(*Frame) *Frame) *FrameCollection {
	for i, f := range c.frames {
		mapped := transform(f)
		if mapped == nil {
			panic(&UnexpectedValueError{Index: i})
		}
		c.frames[i] = mapped
	}
	return c
}

// Frames returns a snapshot of the sequence. The returned slice is a
// copy: replacing its elements does not affect the collection or later
// snapshots.
func (c *FrameCollection) Frames() []*Frame {
	out := make([]*Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// At returns the frame at position index. A position outside the
// sequence panics with an OutOfRangeError.
func (c *FrameCollection) At(index int) *Frame {
	if index < 0 || index >= len(c.frames) {
		panic(&OutOfRangeError{Index: index})
	}
	return c.frames[index]
}

// Set always panics with a ReadOnlyError: the collection cannot be
// written through the index access path.
func (c *FrameCollection) Set(index int, frame *Frame) {
	panic(&ReadOnlyError{Op: "offsetSet", Type: frameCollectionType})
}

// Unset always panics with a ReadOnlyError: the collection cannot be
// deleted from through the index access path.
func (c *FrameCollection) Unset(index int) {
	panic(&ReadOnlyError{Op: "offsetUnset", Type: frameCollectionType})
}

// Count returns the number of frames.
func (c *FrameCollection) Count() int {
	return len(c.frames)
}

// CountIsApplication returns the number of frames marked as application
// code.
func (c *FrameCollection) CountIsApplication() int {
	n := 0
	for _, f := range c.frames {
		if f.IsApplication() {
			n++
		}
	}
	return n
}

// PrependFrames inserts the given frames before the existing sequence,
// preserving their order.
func (c *FrameCollection) PrependFrames(frames []*Frame) {
	merged := make([]*Frame, 0, len(frames)+len(c.frames))
	merged = append(merged, frames...)
	merged = append(merged, c.frames...)
	c.frames = merged
}

// TopDiff compares the tails of both collections in positional lockstep
// and returns the frames of c not already represented at the tail of
// parent: walking both sequences from their highest index backward,
// a frame of c equal (by file and line) to the parent frame at the same
// tail offset is dropped; both cursors step back every iteration,
// whether or not the pair matched. The surviving frames keep their
// original relative order. Neither collection is mutated.
func (c *FrameCollection) TopDiff(parent *FrameCollection) []*Frame {
	diff := make([]*Frame, len(c.frames))
	copy(diff, c.frames)

	p := len(parent.frames) - 1
	for i := len(diff) - 1; i >= 0 && p >= 0; i-- {
		if diff[i].Equal(parent.frames[p]) {
			diff[i] = nil
		}
		p--
	}

	out := diff[:0]
	for _, f := range diff {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// clone returns a new collection over a copy of the frame slice. The
// Frame objects themselves are shared, matching the duplication depth
// the causal merge needs: prepends on the clone leave the original
// sequence intact.
func (c *FrameCollection) clone() *FrameCollection {
	frames := make([]*Frame, len(c.frames))
	copy(frames, c.frames)
	return &FrameCollection{frames: frames}
}
