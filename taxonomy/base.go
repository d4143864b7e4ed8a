package taxonomy

import "slices"

// RootType is the concrete type every other base type descends from.
const RootType = "Exception"

var baseTypes = map[string]string{
	"Exception":      "",
	"ErrorException": "Exception",

	"LogicException":           "Exception",
	"BadFunctionCallException": "LogicException",
	"BadMethodCallException":   "BadFunctionCallException",
	"DomainException":          "LogicException",
	"InvalidArgumentException": "LogicException",
	"LengthException":          "LogicException",
	"OutOfRangeException":      "LogicException",

	"RuntimeException":         "Exception",
	"OutOfBoundsException":     "RuntimeException",
	"OverflowException":        "RuntimeException",
	"RangeException":           "RuntimeException",
	"UnderflowException":       "RuntimeException",
	"UnexpectedValueException": "RuntimeException",
}

// BaseType returns the parent of a built-in concrete base type. The root type
// has an empty parent.
func BaseType(name string) (parent string, exists bool) {
	parent, exists = baseTypes[name]
	return parent, exists
}

// BaseTypes returns the names of every built-in concrete base type, sorted.
func BaseTypes() []string {
	names := make([]string, 0, len(baseTypes))
	for name := range baseTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
