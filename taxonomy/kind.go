package taxonomy

// Kind names an error kind. It is an error so it can be used as the target of
// errors.Is:
//
//	if errors.Is(err, taxonomy.NotFound) {
//		// any error composed with NotFound or one of its descendants
//	}
//
// Kind values are not limited to the constants below: Kind("App.Storage.Missing")
// matches errors composed with that user-defined kind.
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	Logic           Kind = "Logic"
	BadFunctionCall Kind = "BadFunctionCall"
	BadMethodCall   Kind = "BadMethodCall"
	Domain          Kind = "Domain"
	InvalidArgument Kind = "InvalidArgument"
	Length          Kind = "Length"
	OutOfRange      Kind = "OutOfRange"
	Definition      Kind = "Definition"
	Implementation  Kind = "Implementation"
	NotImplemented  Kind = "NotImplemented"
	Unsupported     Kind = "Unsupported"

	Runtime              Kind = "Runtime"
	OutOfBounds          Kind = "OutOfBounds"
	Overflow             Kind = "Overflow"
	Range                Kind = "Range"
	Underflow            Kind = "Underflow"
	UnexpectedValue      Kind = "UnexpectedValue"
	Io                   Kind = "Io"
	Protocol             Kind = "Protocol"
	BadRequest           Kind = "BadRequest"
	Unauthorized         Kind = "Unauthorized"
	Forbidden            Kind = "Forbidden"
	NotFound             Kind = "NotFound"
	ResourceNotFound     Kind = "ResourceNotFound"
	Setup                Kind = "Setup"
	ComponentUnavailable Kind = "ComponentUnavailable"
	ServiceUnavailable   Kind = "ServiceUnavailable"

	Error Kind = "Error"
)
