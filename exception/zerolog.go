//go:build !no_zerolog

package exception

import (
	"github.com/rs/zerolog"
)

func (e String) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error", string(e))
}

func (e Failure) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error", string(e.Type))
	if e.Message != "" {
		event.Str("message", e.Message)
	}
	switch len(e.Cause) {
	case 0: // skip
	case 1:
		event.AnErr("cause", e.Cause[0])
	default:
		event.Errs("cause", e.Cause)
	}
}

func (e *exception) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", e.Shape.Name()).
		Str("signature", e.Shape.Signature()).
		Str("message", e.Message).
		Strs("kinds", e.Shape.Kinds())
	if e.Code != 0 {
		event.Int("code", e.Code)
	}
	if e.Http != 0 {
		event.Int("http", e.Http)
	}
	if e.Severity != 0 {
		event.Int("severity", e.Severity)
	}
	if e.Data != nil {
		event.Any("data", e.Data)
	}
	if e.Previous != nil {
		event.AnErr("previous", e.Previous)
	}
	if e.File != "" {
		event.Str("file", e.File).Int("line", e.Line)
	}
	if len(e.Context) > 0 {
		event.Fields(e.Context)
	}
}

func (f StackFrame) MarshalZerologObject(event *zerolog.Event) {
	event.Str("function", f.Function).Str("file", f.File).Int("line", f.Line)
}

func (s StackFrames) MarshalZerologArray(array *zerolog.Array) {
	for _, frame := range s {
		array.Object(frame)
	}
}
