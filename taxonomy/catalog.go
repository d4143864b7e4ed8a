// Package taxonomy holds the static catalog of standard error kinds: their
// parent kind, the concrete base type they imply and their default HTTP status.
//
// The catalog is fixed at process start and never mutated. Any kind name that
// is not present here is a user-defined kind.
package taxonomy

import (
	"slices"
	"strings"
)

// Package is the namespace that standard kinds live in.
const Package = "Exceptional"

// Suffix terminates every kind identifier.
const Suffix = "Exception"

// Entry describes a standard kind. Empty fields are not defined by the kind.
type Entry struct {
	Extend string
	Type   string
	Http   int
}

var standard = map[string]Entry{
	// programmer errors
	"Logic":           {Type: "LogicException"},
	"BadFunctionCall": {Extend: "Logic", Type: "BadFunctionCallException"},
	"BadMethodCall":   {Extend: "BadFunctionCall", Type: "BadMethodCallException"},
	"Domain":          {Extend: "Logic", Type: "DomainException"},
	"InvalidArgument": {Extend: "Logic", Type: "InvalidArgumentException"},
	"Length":          {Extend: "Logic", Type: "LengthException"},
	"OutOfRange":      {Extend: "Logic", Type: "OutOfRangeException"},
	"Definition":      {Extend: "Logic"},
	"Implementation":  {Extend: "Logic"},
	"NotImplemented":  {Extend: "Implementation", Http: 501},
	"Unsupported":     {Extend: "Logic"},

	// conditions only detectable at run time
	"Runtime":              {Type: "RuntimeException"},
	"OutOfBounds":          {Extend: "Runtime", Type: "OutOfBoundsException"},
	"Overflow":             {Extend: "Runtime", Type: "OverflowException"},
	"Range":                {Extend: "Runtime", Type: "RangeException"},
	"Underflow":            {Extend: "Runtime", Type: "UnderflowException"},
	"UnexpectedValue":      {Extend: "Runtime", Type: "UnexpectedValueException"},
	"Io":                   {Extend: "Runtime"},
	"Protocol":             {Extend: "Io"},
	"BadRequest":           {Extend: "Runtime", Http: 400},
	"Unauthorized":         {Extend: "Runtime", Http: 401},
	"Forbidden":            {Extend: "Unauthorized", Http: 403},
	"NotFound":             {Extend: "Runtime"},
	"ResourceNotFound":     {Extend: "NotFound", Http: 404},
	"Setup":                {Extend: "Runtime"},
	"ComponentUnavailable": {Extend: "Setup"},
	"ServiceUnavailable":   {Extend: "Setup", Http: 503},

	// engine level errors
	"Error": {Type: "ErrorException"},
}

// Lookup returns the catalog entry of a standard kind name such as "NotFound".
func Lookup(name string) (Entry, bool) {
	entry, exists := standard[name]
	return entry, exists
}

// Ancestors returns the extends chain of a standard kind, nearest first. The
// last element is one of the roots "Logic", "Runtime" or "Error". Unknown and
// root kinds have no ancestors.
func Ancestors(name string) []string {
	var chain []string
	for {
		entry, exists := standard[name]
		if !exists || entry.Extend == "" {
			return chain
		}
		name = entry.Extend
		chain = append(chain, name)
	}
}

// Names returns every standard kind name, sorted.
func Names() []string {
	names := make([]string, 0, len(standard))
	for name := range standard {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Identifier returns the canonical identifier of a standard kind, for example
// "Exceptional.NotFoundException".
func Identifier(name string) string {
	return Package + "." + name + Suffix
}

// Name is the inverse of Identifier. It reports false for identifiers outside
// the standard package or naming an unknown kind.
func Name(identifier string) (string, bool) {
	local, found := strings.CutPrefix(identifier, Package+".")
	if !found {
		return "", false
	}
	name, found := strings.CutSuffix(local, Suffix)
	if !found {
		return "", false
	}
	if _, exists := standard[name]; !exists {
		return "", false
	}
	return name, true
}
