package exceptional

import (
	"sync"

	"github.com/thanhminhmr/go-exceptional/exception"

	"github.com/rs/zerolog"
)

// Composer composes errors from kind names. It is safe for concurrent use.
type Composer struct {
	config   *Config
	logger   *zerolog.Logger
	metrics  *Metrics
	registry *Registry

	hookMutex sync.RWMutex
	hook      Hook
}

// NewComposer creates a Composer with its own Registry. A nil config uses the
// defaults, a nil logger logs nothing and nil metrics record nothing. The
// definitions file named by the config is loaded into the Registry.
func NewComposer(config *Config, logger *zerolog.Logger, metrics *Metrics) (*Composer, error) {
	if config == nil {
		config = defaultConfig()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	composer := &Composer{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		registry: NewRegistry(),
		hook:     noHook{},
	}
	if config.Definitions != "" {
		if err := composer.registry.LoadDefinitions(config.Definitions); err != nil {
			return nil, err
		}
		logger.Info().Str("path", config.Definitions).Msg("Definitions loaded")
	}
	return composer, nil
}

func (c *Composer) Registry() *Registry {
	return c.registry
}

// SetHook replaces the ambient hook. A nil hook removes it.
func (c *Composer) SetHook(hook Hook) {
	if hook == nil {
		hook = noHook{}
	}
	c.hookMutex.Lock()
	defer c.hookMutex.Unlock()
	c.hook = hook
}

func (c *Composer) currentHook() Hook {
	c.hookMutex.RLock()
	defer c.hookMutex.RUnlock()
	return c.hook
}

// Create composes an error satisfying every kind in types. The error is
// attributed to the caller of Create. Nil parameters are the zero Parameters.
//
// Failures are ErrDefinition, ErrConflict, ErrUnknownReference and
// ErrInvalidInput. No error is composed when one of them is returned.
func (c *Composer) Create(types []string, parameters *Parameters) (exception.Exception, error) {
	return c.compose(types, parameters, 1)
}

// CreateFrom is Create with the kinds given as a comma separated spec such as
// "NotFound, Io" and the parameters given as a flat bag.
func (c *Composer) CreateFrom(spec string, bag map[string]any) (exception.Exception, error) {
	return c.createFrom(spec, bag, 1)
}

func (c *Composer) createFrom(spec string, bag map[string]any, skip int) (exception.Exception, error) {
	parameters, err := DecodeParameters(bag)
	if err != nil {
		c.metrics.composed(resultError)
		c.logger.Debug().Err(err).Str("spec", spec).Msg("Composition failed")
		return nil, err
	}
	return c.compose(splitKinds(spec), parameters, skip+1)
}

// compose does the work of Create. skip is the number of frames between
// compose and the call site.
func (c *Composer) compose(types []string, parameters *Parameters, skip int) (exception.Exception, error) {
	// keep the hook away while working
	if hook := c.currentHook(); hook.IsInstalled() {
		hook.Suspend()
		defer hook.Resume()
	}
	if parameters == nil {
		parameters = &Parameters{}
	}
	// locate the call site
	skip += 1 + parameters.rewind()
	trace := parameters.trace()
	var caller exception.StackFrame
	if trace == nil {
		trace = exception.Capture(skip, int(c.config.StackDepth))
		caller, _ = trace.FirstFrame()
	} else {
		caller, _ = exception.Capture(skip, 1).FirstFrame()
	}
	// resolve the composite type
	shape, http, err := c.resolve(types, parameters, caller)
	if err != nil {
		c.metrics.composed(resultError)
		c.logger.Debug().Err(err).Strs("types", types).Msg("Composition failed")
		return nil, err
	}
	// instantiate
	properties := exception.Properties{
		Message:  parameters.Message,
		Code:     parameters.Code,
		Http:     http,
		Severity: parameters.Severity,
		Data:     parameters.Data,
		Previous: parameters.previous(),
		File:     parameters.File,
		Line:     parameters.Line,
		Context:  parameters.context(),
		Trace:    trace,
	}
	if properties.File == "" {
		properties.File = caller.File
	}
	if properties.Line == 0 {
		properties.Line = caller.Line
	}
	return shape.instantiate(properties, caller), nil
}

func (c *Composer) resolve(types []string, parameters *Parameters, caller exception.StackFrame) (*Type, int, error) {
	namespace := callerNamespace(caller)
	if parameters.Namespace != nil {
		explicit, err := explicitNamespace(*parameters.Namespace)
		if err != nil {
			return nil, 0, err
		}
		namespace = explicit
	}
	r := newResolution(c.registry, namespace, parameters.Http)
	if err := r.importTypes(types); err != nil {
		return nil, 0, err
	}
	if err := r.importBase(parameters.Type); err != nil {
		return nil, 0, err
	}
	if err := r.importInterfaces(parameters.Interfaces); err != nil {
		return nil, 0, err
	}
	if err := r.importTraits(parameters.Traits); err != nil {
		return nil, 0, err
	}
	r.dropImpliedLocalKinds()
	if len(r.interfaces) == 0 && r.base == "" {
		return nil, 0, ErrInvalidInput.SetMessage("no kind requested")
	}
	if err := r.indexInterfaces(); err != nil {
		return nil, 0, err
	}
	return c.lookup(r), r.http, nil
}

// lookup returns the cached composite type of the resolution, synthesizing it
// on the first request.
func (c *Composer) lookup(r *resolution) *Type {
	d := r.definition()
	signature := d.signature()
	if cached, exists := c.registry.types.Get(signature); exists {
		c.metrics.composed(resultHit)
		return cached
	}
	closure := r.closure(d)
	traits := make([]Trait, 0, len(d.traits))
	for _, id := range d.traits {
		traits = append(traits, c.registry.trait(id))
	}
	shape, declared, created := c.registry.store(signature, r.index, func() *Type {
		return newType(d, signature, closure, traits)
	})
	for _, id := range declared {
		c.logger.Trace().Str("id", id).Strs("extends", r.index[id]).Msg("Interface declared")
	}
	c.metrics.declared(len(declared))
	if !created {
		c.metrics.composed(resultHit)
		return shape
	}
	c.metrics.composed(resultMiss)
	c.metrics.synthesized()
	c.logger.Debug().Object("type", shape).Msg("Composite type synthesized")
	return shape
}
