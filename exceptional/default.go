package exceptional

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exceptional/configuration"
	"github.com/thanhminhmr/go-exceptional/exception"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultMutex    sync.Mutex
	defaultComposer *Composer
)

// Default returns the Composer behind the package-level functions. Unless set
// with SetDefault, it is built on first use from the environment, falling back
// to the default configuration when the environment is not valid. Fallbacks
// are reported on the global zerolog logger.
func Default() *Composer {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	if defaultComposer == nil {
		defaultComposer = newDefaultComposer(&log.Logger, configuration.Load[Config])
	}
	return defaultComposer
}

func newDefaultComposer(logger *zerolog.Logger, load func(config *Config, prefixes ...string) error) *Composer {
	config := &Config{}
	if err := load(config); err != nil {
		logger.Warn().Err(err).Msg("Invalid composer configuration, using defaults")
		config = defaultConfig()
	}
	composer, err := NewComposer(config, nil, nil)
	if err != nil {
		// the definitions file is the only thing that can fail
		logger.Warn().Err(err).
			Str("path", config.Definitions).
			Msg("Cannot load definitions, using defaults")
		composer, _ = NewComposer(defaultConfig(), nil, nil)
	}
	return composer
}

// SetDefault replaces the Composer behind the package-level functions.
func SetDefault(composer *Composer) {
	if composer == nil {
		panic("BUG: default composer must not be nil")
	}
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultComposer = composer
}

// Compose composes an error with the default Composer. See
// Composer.CreateFrom.
func Compose(spec string, bag map[string]any) (exception.Exception, error) {
	return Default().createFrom(spec, bag, 1)
}

// Create is Compose for kind names known to be correct. A composition failure
// is a programmer error and panics.
//
//	return exceptional.Create("NotFound", map[string]any{
//		"message": "user not found",
//		"data":    id,
//	})
func Create(spec string, bag map[string]any) exception.Exception {
	err, failure := Default().createFrom(spec, bag, 1)
	if failure != nil {
		panic("BUG: cannot compose " + strings.TrimSpace(spec) + ": " + failure.Error())
	}
	return err
}

// Errorf is Create with a formatted message.
func Errorf(spec string, format string, arguments ...any) exception.Exception {
	err, failure := Default().createFrom(spec, map[string]any{"message": fmt.Sprintf(format, arguments...)}, 1)
	if failure != nil {
		panic("BUG: cannot compose " + strings.TrimSpace(spec) + ": " + failure.Error())
	}
	return err
}
