package exceptional

import (
	"maps"

	"github.com/thanhminhmr/go-exceptional/exception"
)

// Trait attaches behavior to every error of a composite type that lists it.
// It runs once per error, before the error is returned, and may add values to
// the error context.
type Trait func(extra map[string]any, caller exception.StackFrame)

// StaticTrait returns a Trait that copies fixed values into the context.
func StaticTrait(values map[string]any) Trait {
	values = maps.Clone(values)
	return func(extra map[string]any, _ exception.StackFrame) {
		maps.Copy(extra, values)
	}
}

// IncompleteTrait records the function the error was raised from, so code
// that is not finished yet can be located from the error alone.
func IncompleteTrait(extra map[string]any, caller exception.StackFrame) {
	if caller.Function != "" {
		extra["function"] = caller.Function
	}
}
