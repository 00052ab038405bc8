package pathkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pathkit package.
var (
	// ErrNoMoveTo is wrapped by StructuralError when a path does not
	// start with a MoveTo.
	ErrNoMoveTo = errors.New("pathkit: path must begin with a move command")

	// ErrUnknownElement is returned when a segment is requested for an
	// element type outside the PathElement set.
	ErrUnknownElement = errors.New("pathkit: unknown path element")

	// ErrIndexOutOfRange is returned by SegmentMap lookups past the end
	// of the path.
	ErrIndexOutOfRange = errors.New("pathkit: segment index out of range")
)

// MalformedPathError reports path or points text that cannot be parsed:
// an unknown command, an argument count that is not a multiple of the
// command's arity, or a token that is not a number.
type MalformedPathError struct {
	// Pos is the 1-based byte offset of the offending token.
	Pos int
	// Command is the command being parsed, or 0 for points lists.
	Command byte
	Reason  string
}

func (e *MalformedPathError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("pathkit: malformed path at position %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("pathkit: malformed path at position %d in command '%c': %s", e.Pos, e.Command, e.Reason)
}

// StructuralError reports a path whose element sequence is invalid,
// such as one that does not begin with a MoveTo.
type StructuralError struct {
	// Index is the offending element index.
	Index int
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%v (element %d)", e.Err, e.Index)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
