package exception

import (
	"runtime"
	"sync"
)

// DefaultDepth is the maximum number of frames recorded when no depth is given.
const DefaultDepth = 32

type StackFrame struct {
	Function string
	File     string
	Line     int
}

type StackFrames []StackFrame

// StackTrace captures and resolves the current call stack right away. A skip
// of 0 starts the trace at the caller of StackTrace.
func StackTrace(skip int) StackFrames {
	return Capture(skip+1, DefaultDepth).Frames()
}

// Trace is a captured call stack whose frames are resolved on first use.
//
// Only the program counters are recorded at capture time: the stack is gone
// once the capturing function returns, but turning counters into function,
// file and line is deferred until someone asks for them.
type Trace struct {
	callers []uintptr
	once    sync.Once
	frames  StackFrames
}

// Capture records up to depth program counters of the current goroutine. A
// skip of 0 starts the trace at the caller of Capture.
func Capture(skip int, depth int) *Trace {
	if depth <= 0 {
		depth = DefaultDepth
	}
	callers := make([]uintptr, depth)
	callersLength := runtime.Callers(2+skip, callers)
	return &Trace{callers: callers[:callersLength]}
}

// NewTrace wraps frames that are already resolved, for example a trace handed
// over from another error.
func NewTrace(frames StackFrames) *Trace {
	trace := &Trace{frames: frames}
	trace.once.Do(func() {})
	return trace
}

// Frames returns the resolved frames of this Trace. Safe on a nil Trace.
func (t *Trace) Frames() StackFrames {
	if t == nil {
		return nil
	}
	t.once.Do(t.resolve)
	return t.frames
}

// FirstFrame returns the innermost frame without resolving the rest of the
// trace when it has not been resolved yet.
func (t *Trace) FirstFrame() (StackFrame, bool) {
	if t == nil {
		return StackFrame{}, false
	}
	if len(t.callers) == 0 {
		frames := t.Frames()
		if len(frames) == 0 {
			return StackFrame{}, false
		}
		return frames[0], true
	}
	frame, _ := runtime.CallersFrames(t.callers[:1]).Next()
	return toStackFrame(frame), true
}

// Skip returns a Trace without its first frames. The receiver is left intact.
func (t *Trace) Skip(count int) *Trace {
	if t == nil || count <= 0 {
		return t
	}
	if len(t.callers) > 0 {
		return &Trace{callers: t.callers[min(count, len(t.callers)):]}
	}
	frames := t.Frames()
	return NewTrace(frames[min(count, len(frames)):])
}

func (t *Trace) resolve() {
	if len(t.callers) == 0 {
		return
	}
	frames := runtime.CallersFrames(t.callers)
	stack := make(StackFrames, 0, len(t.callers))
	for {
		frame, more := frames.Next()
		stack = append(stack, toStackFrame(frame))
		if !more {
			break
		}
	}
	t.frames = stack
}

func toStackFrame(frame runtime.Frame) StackFrame {
	return StackFrame{
		Function: frame.Function,
		File:     frame.File,
		Line:     frame.Line,
	}
}
