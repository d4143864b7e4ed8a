package exceptional

import (
	"strconv"

	"github.com/thanhminhmr/go-exceptional/configuration"
	"github.com/thanhminhmr/go-exceptional/exception"
)

type Config struct {
	StackDepth  uint16 `env:"EXCEPTIONAL_STACK_DEPTH" validate:"min=1,max=256"`
	AutoLoad    bool   `env:"EXCEPTIONAL_AUTOLOAD"`
	Definitions string `env:"EXCEPTIONAL_DEFINITIONS" validate:"omitempty,file"`
}

func init() {
	configuration.SetDefault("EXCEPTIONAL_STACK_DEPTH", strconv.Itoa(exception.DefaultDepth))
	configuration.SetDefault("EXCEPTIONAL_AUTOLOAD", "false")
}

func defaultConfig() *Config {
	return &Config{StackDepth: exception.DefaultDepth}
}
