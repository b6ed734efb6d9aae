package frame

import "fmt"

// Frame is a single call-stack location: where in the source a call was made
// and the function context it was made from.
//
// Line is kept as the captured text, never reinterpreted as a number. Frames
// are immutable once captured.
type Frame struct {
	File    string `json:"file"`
	Line    string `json:"line"`
	Context string `json:"context"`
}

// Equal reports whether two frames carry identical file, line, and context.
func (f Frame) Equal(other Frame) bool {
	return f == other
}

// String renders the frame in the fixed raw-trace layout.
// This is the inverse of ParseLine.
func (f Frame) String() string {
	return fmt.Sprintf("File %q, line %s, in %s", f.File, f.Line, f.Context)
}

// Stack is one captured call path: an ordered sequence of frames, oldest
// caller first. Stacks are immutable once built.
type Stack []Frame

// Equal reports structural equality: same length and pairwise-equal frames.
// An empty stack equals only another empty stack.
func (s Stack) Equal(other Stack) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
