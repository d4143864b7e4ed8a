package exception

import "fmt"

// String is a string-based error kind. It is meant to be declared as a
// constant and refined with a message or causes where the failure happens:
//
//	const ErrRead = exception.String("read failed")
//
//	return ErrRead.SetMessage("file %s", name).AddCause(err)
//
// Every refined error still matches its String with errors.Is.
type String string

func (e String) Error() string {
	return string(e)
}

// SetMessage returns a Failure of this kind carrying the given message.
func (e String) SetMessage(message string, parameters ...any) Failure {
	return Failure{Type: e}.SetMessage(message, parameters...)
}

// AddCause returns a Failure of this kind caused by the given errors. Nil
// errors are ignored.
func (e String) AddCause(errors ...error) Failure {
	return Failure{Type: e}.AddCause(errors...)
}

// Failure is a String refined with a message and causes.
type Failure struct {
	Type    String
	Message string
	Cause   []error
}

func (e Failure) Error() string {
	if e.Message != "" {
		return string(e.Type) + ": " + e.Message
	}
	return string(e.Type)
}

func (e Failure) SetMessage(message string, parameters ...any) Failure {
	if len(parameters) > 0 {
		e.Message = fmt.Sprintf(message, parameters...)
	} else {
		e.Message = message
	}
	return e
}

func (e Failure) AddCause(errors ...error) Failure {
	e.Cause = concat(e.Cause, errors...)
	return e
}

func (e Failure) Unwrap() []error {
	return e.Cause
}

func (e Failure) Is(target error) bool {
	if kind, ok := target.(String); ok {
		return e.Type == kind
	}
	return false
}
