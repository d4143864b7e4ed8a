package internal

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// KindPattern is the syntax of a kind name: segments of letters, digits and
// underscores joined by "." or "/", optionally prefixed by a single "."
// (namespace relative), a single "/" (absolute) or "./" and "../" segments
// (path relative).
var KindPattern = regexp.MustCompile(`^(?:(?:\.\.?/)+|[./])?[A-Za-z0-9_]+(?:[./][A-Za-z0-9_]+)*$`)

// Validator is shared by configuration loading, request binding and kind name
// validation. It knows the "kind" rule on top of the built-in ones.
var Validator = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())
	if err := instance.RegisterValidation("kind", validateKind); err != nil {
		panic("BUG: cannot register kind validation: " + err.Error())
	}
	return instance
}

func validateKind(field validator.FieldLevel) bool {
	return KindPattern.MatchString(field.Field().String())
}
