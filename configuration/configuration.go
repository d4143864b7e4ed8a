package configuration

import (
	"maps"
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exceptional/internal"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
)

var (
	globalMutex        sync.RWMutex
	globalDefaults     = make(map[string]string)
	globalEnvironments = make(map[string]string)
)

func init() {
	// .env file have higher priority than defaults
	if environments, err := godotenv.Read(".env"); err == nil {
		maps.Copy(globalEnvironments, environments)
	}

	// os.Environ() have the highest priority
	for _, line := range os.Environ() {
		if key, value, found := strings.Cut(line, "="); found {
			globalEnvironments[key] = value
		}
	}
}

// SetDefault registers the value used when key is neither in the environment
// nor in the .env file. Packages call it from init.
func SetDefault(key string, value string) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalDefaults[key] = value
}

// Load fills config from the environment and validates it. With prefixes, only
// keys starting with the joined prefixes are considered and the prefix is
// removed before matching the env tags.
func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.ConfigDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return err
	}
	return internal.Validator.Struct(config)
}

// Loader adapts Load into a constructor, ready for fx.Provide.
func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func getEnvironment(prefix string) map[string]string {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	environments := make(map[string]string)
	for key, value := range globalDefaults {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	for key, value := range globalEnvironments {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	return environments
}
