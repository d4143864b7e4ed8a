package exceptional

import (
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exceptional/taxonomy"

	"github.com/rs/zerolog"
)

// Hook is an ambient registration hook. The composer suspends an installed
// hook while it works and resumes it on every exit path. Suspensions from
// concurrent compositions nest, so the hook stays inactive until the last of
// them returns.
type Hook interface {
	IsInstalled() bool
	IsActive() bool
	Suspend()
	Resume()
}

type noHook struct{}

func (noHook) IsInstalled() bool { return false }
func (noHook) IsActive() bool { return false }
func (noHook) Suspend() {}
func (noHook) Resume() {}

// AutoLoader declares interfaces on first reference: once initialized, looking
// up an unknown identifier ending in "Exception" composes it, which declares
// the interface and its namespace chain.
type AutoLoader struct {
	composer *Composer
	logger   *zerolog.Logger

	mutex     sync.Mutex
	installed bool
	suspended int
}

func NewAutoLoader(composer *Composer, logger *zerolog.Logger) *AutoLoader {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &AutoLoader{composer: composer, logger: logger}
}

// Init installs the AutoLoader on its composer. Calling it again is a no-op.
func (a *AutoLoader) Init() {
	a.mutex.Lock()
	if a.installed {
		a.mutex.Unlock()
		return
	}
	a.installed = true
	a.mutex.Unlock()
	a.composer.SetHook(a)
	a.composer.registry.setLoader(a.load)
	a.logger.Debug().Msg("AutoLoader installed")
}

// Teardown removes the AutoLoader from its composer.
func (a *AutoLoader) Teardown() {
	a.mutex.Lock()
	if !a.installed {
		a.mutex.Unlock()
		return
	}
	a.installed = false
	a.mutex.Unlock()
	a.composer.registry.setLoader(nil)
	a.composer.SetHook(nil)
	a.logger.Debug().Msg("AutoLoader removed")
}

func (a *AutoLoader) IsInstalled() bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.installed
}

func (a *AutoLoader) IsActive() bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.installed && a.suspended == 0
}

// Suspend disables loading until the matching Resume. Suspensions nest.
func (a *AutoLoader) Suspend() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.suspended++
}

func (a *AutoLoader) Resume() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.suspended > 0 {
		a.suspended--
	}
}

func (a *AutoLoader) load(id string) {
	if !strings.Contains(id, ".") || !strings.HasSuffix(id, taxonomy.Suffix) || !a.IsActive() {
		return
	}
	if _, err := a.composer.compose([]string{"/" + id}, &Parameters{Message: "AutoLoader"}, 0); err != nil {
		a.logger.Debug().Err(err).Str("id", id).Msg("AutoLoader cannot declare interface")
		return
	}
	a.logger.Trace().Str("id", id).Msg("AutoLoader declared interface")
}
