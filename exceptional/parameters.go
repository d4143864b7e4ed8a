package exceptional

import (
	"maps"
	"strings"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/internal"

	"github.com/go-viper/mapstructure/v2"
)

// Parameters are the per-occurrence values of a composition. The zero value
// is ready to use.
//
// Previous is kept only when it holds an error, and StackTrace only when it
// holds a *exception.Trace or exception.StackFrames. Anything else is ignored.
type Parameters struct {
	Message  string `mapstructure:"message"`
	Code     int    `mapstructure:"code"`
	Http     int    `mapstructure:"http"`
	Severity int    `mapstructure:"severity"`
	Data     any    `mapstructure:"data"`
	Previous any    `mapstructure:"previous"`
	File     string `mapstructure:"file"`
	Line     int    `mapstructure:"line"`

	// Rewind is the number of extra frames to skip when attributing the error
	// to its call site. Negative values count as zero.
	Rewind int `mapstructure:"rewind"`

	// Type names the concrete base type explicitly, for example
	// "RuntimeException".
	Type string `mapstructure:"type"`

	// Namespace overrides the namespace derived from the caller. An empty
	// string means the root namespace.
	Namespace *string `mapstructure:"namespace"`

	Interfaces []string `mapstructure:"interfaces"`
	Traits     []string `mapstructure:"traits"`
	StackTrace any      `mapstructure:"stackTrace"`

	// Extra holds the keys that are not recognized. It becomes the context of
	// the composed error.
	Extra map[string]any `mapstructure:",remain"`
}

// DecodeParameters decodes a flat parameter bag. Unrecognized keys are kept in
// Extra.
func DecodeParameters(bag map[string]any) (*Parameters, error) {
	var parameters Parameters
	if len(bag) == 0 {
		return &parameters, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       internal.ParameterDecodeHookFunc,
		WeaklyTypedInput: true,
		Result:           &parameters,
	})
	if err != nil {
		return nil, ErrInvalidInput.SetMessage("create parameter decoder failed").AddCause(err)
	}
	if err := decoder.Decode(bag); err != nil {
		return nil, ErrInvalidInput.SetMessage("decode parameters failed").AddCause(err)
	}
	return &parameters, nil
}

func (p *Parameters) rewind() int {
	return max(p.Rewind, 0)
}

func (p *Parameters) previous() error {
	if err, ok := p.Previous.(error); ok {
		return err
	}
	return nil
}

func (p *Parameters) trace() *exception.Trace {
	switch trace := p.StackTrace.(type) {
	case *exception.Trace:
		return trace
	case exception.StackFrames:
		return exception.NewTrace(trace)
	}
	return nil
}

func (p *Parameters) context() map[string]any {
	if len(p.Extra) == 0 {
		return nil
	}
	return maps.Clone(p.Extra)
}

// splitKinds splits a kind specification such as "BadRequest, Io" into kind
// names. Blank entries are kept and skipped later.
func splitKinds(spec string) []string {
	return strings.Split(spec, ",")
}
