package exceptional

import "github.com/thanhminhmr/go-exceptional/exception"

const (
	ErrDefinition       = exception.String("definition error")
	ErrConflict         = exception.String("conflicting definition")
	ErrUnknownReference = exception.String("unknown reference")
	ErrInvalidInput     = exception.String("invalid input")
)
