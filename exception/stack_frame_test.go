package exception_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exceptional/exception"
)

func checkStackTrace(t *testing.T, trace exception.StackFrames, function string) {
	t.Helper()
	require.NotEmpty(t, trace)
	for _, frame := range trace {
		if frame.Function == "" || frame.File == "" || frame.Line == 0 {
			t.Fatalf("expected function, file, and line populated, got %+v", frame)
		}
	}
	if !strings.HasSuffix(trace[0].Function, function) {
		t.Fatalf("expected first function is %s, got %+v", function, trace[0])
	}
}

func TestStackTrace(t *testing.T) {
	checkStackTrace(t, exception.StackTrace(0), "/exception_test.TestStackTrace")
}

func captureHere() *exception.Trace {
	return exception.Capture(1, 0)
}

func TestCaptureSkipsFrames(t *testing.T) {
	trace := captureHere()
	checkStackTrace(t, trace.Frames(), "/exception_test.TestCaptureSkipsFrames")
}

func TestFirstFrameWithoutResolving(t *testing.T) {
	trace := exception.Capture(0, 8)
	frame, ok := trace.FirstFrame()
	require.True(t, ok)
	require.True(t, strings.HasSuffix(frame.Function, "/exception_test.TestFirstFrameWithoutResolving"))
	require.Equal(t, frame, trace.Frames()[0])
}

func TestCaptureDepth(t *testing.T) {
	require.LessOrEqual(t, len(exception.Capture(0, 2).Frames()), 2)
}

func TestNilTrace(t *testing.T) {
	var trace *exception.Trace
	require.Nil(t, trace.Frames())
	_, ok := trace.FirstFrame()
	require.False(t, ok)
	require.Nil(t, trace.Skip(1))
}

func TestNewTraceAndSkip(t *testing.T) {
	frames := exception.StackFrames{
		{Function: "a", File: "a.go", Line: 1},
		{Function: "b", File: "b.go", Line: 2},
	}
	trace := exception.NewTrace(frames)
	first, ok := trace.FirstFrame()
	require.True(t, ok)
	require.Equal(t, "a", first.Function)

	skipped := trace.Skip(1)
	require.Equal(t, exception.StackFrames{{Function: "b", File: "b.go", Line: 2}}, skipped.Frames())
	require.Len(t, trace.Frames(), 2)
	require.Empty(t, trace.Skip(5).Frames())
}
