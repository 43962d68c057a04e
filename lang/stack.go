package lang

import (
	"fmt"
	"io"

	"github.com/luthersystems/yascl/parser/token"
)

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight is the maximum number of frames allowed on the stack.  When
	// MaxHeight is not positive the stack height is unlimited; a Runtime
	// stack always has a positive limit so deep recursion fails with an
	// error instead of exhausting the goroutine stack.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name   string
	Source *token.Location // location of the call expression
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push pushes a new stack frame onto s.  Push fails without modifying s if
// the stack is already at its maximum height.
func (s *CallStack) Push(name string, loc *token.Location) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return fmt.Errorf("stack overflow: maximum call depth %d exceeded calling %s", s.MaxHeight, name)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: loc})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s (called at %s)\n", indent, i, f.Name, f.Source)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
