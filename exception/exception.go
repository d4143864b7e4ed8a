package exception

import (
	"maps"

	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

// Exception is an error composed from one or more kinds. It carries the
// classification of its composite type together with the details of one
// occurrence: message, code, HTTP status, severity, payload, origin and a
// lazily resolved stack trace.
//
// An Exception is read-only after construction except for its data payload and
// its HTTP status, which can be adjusted to enrich an error while it travels up
// the stack. Setters modify the current Exception and return it.
type Exception interface {
	// Error returns a string representation of this Exception in the form of
	// "Type: message".
	Error() string

	// GetType returns the display name of the composite type, for example
	// "ResourceNotFound | Io".
	GetType() string

	// GetShape returns the composite type this Exception was built from. Two
	// exceptions composed from the same definition share the same Shape.
	GetShape() Shape

	// GetMessage returns the message of this Exception.
	GetMessage() string

	// GetCode returns the application specific code, zero when not set.
	GetCode() int

	// GetHttpStatus returns the associated HTTP status, zero when none of the
	// kinds defines one and no status was given.
	GetHttpStatus() int

	// SetHttpStatus associates this Exception with an HTTP status.
	SetHttpStatus(status int) Exception

	// GetSeverity returns the severity given at creation.
	GetSeverity() int

	// GetData returns the arbitrary payload attached to this Exception.
	GetData() any

	// SetData replaces the payload attached to this Exception.
	SetData(data any) Exception

	// GetPrevious returns the error that caused this Exception, if any.
	GetPrevious() error

	// GetFile returns the file this Exception is attributed to.
	GetFile() string

	// GetLine returns the line this Exception is attributed to.
	GetLine() int

	// GetContext returns a copy of the extra context given at creation or
	// attached by traits. Returns nil when there is none.
	GetContext() map[string]any

	// GetKinds returns the identifiers of the kinds this Exception directly
	// satisfies, sorted. Ancestors implied by them are not listed.
	GetKinds() []string

	// GetBaseType returns the concrete base type, for example "RuntimeException".
	GetBaseType() string

	// Satisfies reports whether this Exception is of the given kind, either
	// directly or through an ancestor. Both short names ("NotFound") and
	// identifiers ("App.Storage.MissingException") are accepted.
	Satisfies(kind string) bool

	// GetStackTrace returns the stack trace of this Exception. The trace is
	// resolved on first call and cached afterward.
	GetStackTrace() StackFrames

	// GetStackFrame returns the first frame of the stack trace.
	GetStackFrame() (StackFrame, bool)

	// Unwrap returns the previous error for errors.Is and errors.As.
	Unwrap() error

	// Is matches taxonomy.Kind targets by kind and other exceptions by
	// composite type.
	Is(target error) bool

	__() // private
}

// Shape is the composite type behind an Exception.
type Shape interface {
	Name() string
	Signature() string
	Base() string
	Kinds() []string
	Satisfies(kind string) bool
}

// Properties are the per-occurrence values of a new Exception.
type Properties struct {
	Message  string
	Code     int
	Http     int
	Severity int
	Data     any
	Previous error
	File     string
	Line     int
	Context  map[string]any
	Trace    *Trace
}

// New creates an Exception of the given composite type.
func New(shape Shape, properties Properties) Exception {
	if shape == nil {
		panic("BUG: shape must not be nil")
	}
	return &exception{
		Shape:    shape,
		Message:  properties.Message,
		Code:     properties.Code,
		Http:     properties.Http,
		Severity: properties.Severity,
		Data:     properties.Data,
		Previous: properties.Previous,
		File:     properties.File,
		Line:     properties.Line,
		Context:  properties.Context,
		Trace:    properties.Trace,
	}
}

type exception struct {
	Shape    Shape
	Message  string
	Code     int
	Http     int
	Severity int
	Data     any
	Previous error
	File     string
	Line     int
	Context  map[string]any
	Trace    *Trace
}

func (e *exception) Error() string {
	if e.Message != "" {
		return e.Shape.Name() + ": " + e.Message
	}
	return e.Shape.Name()
}

func (e *exception) GetType() string {
	return e.Shape.Name()
}

func (e *exception) GetShape() Shape {
	return e.Shape
}

func (e *exception) GetMessage() string {
	return e.Message
}

func (e *exception) GetCode() int {
	return e.Code
}

func (e *exception) GetHttpStatus() int {
	return e.Http
}

func (e *exception) SetHttpStatus(status int) Exception {
	e.Http = status
	return e
}

func (e *exception) GetSeverity() int {
	return e.Severity
}

func (e *exception) GetData() any {
	return e.Data
}

func (e *exception) SetData(data any) Exception {
	e.Data = data
	return e
}

func (e *exception) GetPrevious() error {
	return e.Previous
}

func (e *exception) GetFile() string {
	return e.File
}

func (e *exception) GetLine() int {
	return e.Line
}

func (e *exception) GetContext() map[string]any {
	if e.Context == nil {
		return nil
	}
	return maps.Clone(e.Context)
}

func (e *exception) GetKinds() []string {
	return e.Shape.Kinds()
}

func (e *exception) GetBaseType() string {
	return e.Shape.Base()
}

func (e *exception) Satisfies(kind string) bool {
	return e.Shape.Satisfies(kind)
}

func (e *exception) GetStackTrace() StackFrames {
	return e.Trace.Frames()
}

func (e *exception) GetStackFrame() (StackFrame, bool) {
	return e.Trace.FirstFrame()
}

func (e *exception) __() {}

func (e *exception) Unwrap() error {
	return e.Previous
}

func (e *exception) Is(target error) bool {
	switch target := target.(type) {
	case taxonomy.Kind:
		return e.Shape.Satisfies(string(target))
	case *exception:
		return e.Shape == target.Shape
	}
	return false
}
