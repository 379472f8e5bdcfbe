// errors.go defines the typed failure conditions of the public surface.

package inspector

import "fmt"

// OutOfRangeError reports an indexed read past the end of a FrameCollection.
type OutOfRangeError struct {
	// Index is the requested position.
	Index int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("Frame[%d] was not found.", e.Index)
}

// ReadOnlyError reports a write or delete attempt on a read-only collection.
type ReadOnlyError struct {
	// Op is the attempted operation name.
	Op string

	// Type is the type name of the read-only object.
	Type string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("Calling [%s] method on read-only object [%s] is not allowed.", e.Op, e.Type)
}

// InvalidLengthError reports a non-positive length passed to FileLinesRange.
type InvalidLengthError struct {
	// Length is the rejected value.
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("You provided a invalid value [%d] for $length, $length cannot be lower or equal to 0.", e.Length)
}

// UnexpectedValueError reports a Map transform that produced a nil Frame.
// This is a programming-error class: it is surfaced as a panic and is not
// meant to be recovered in normal flow.
type UnexpectedValueError struct {
	// Index is the position whose transform misbehaved.
	Index int
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("Frame transform returned a non-Frame value at position %d.", e.Index)
}
