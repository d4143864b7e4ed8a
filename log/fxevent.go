package log

import (
	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger writes the events of the application container to zerolog.
// Successful steps are logged at the given level, failures always at error
// level with the root cause of the failure.
type fxLogger struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

// InitFxLogger returns an fxevent.Logger writing container steps at debug
// level.
func InitFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return fxLogger{logger: logger, level: zerolog.DebugLevel}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("module", string(m))
	}
}

// event starts a success event, or an error event carrying the root cause of
// err when it is not nil.
func (l fxLogger) event(err error) *zerolog.Event {
	if err != nil {
		return l.logger.Error().Err(dig.RootCause(err))
	}
	return l.logger.WithLevel(l.level)
}

func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.event(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		l.event(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Supplied:
		l.event(e.Err).
			Str("type", e.TypeName).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Supplied")
	case *fxevent.Provided:
		l.event(e.Err).
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Bool("private", e.Private).
			Msg("Provided")
	case *fxevent.Replaced:
		l.event(e.Err).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Replaced")
	case *fxevent.Decorated:
		l.event(e.Err).
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Decorated")
	case *fxevent.Run:
		l.event(e.Err).
			Str("name", e.Name).
			Str("kind", e.Kind).
			EmbedObject(moduleName(e.ModuleName)).
			Dur("runtime", e.Runtime).
			Msg("Run")
	case *fxevent.Invoked:
		// the stack is only worth reading on failure
		if e.Err != nil {
			l.event(e.Err).
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Str("stack", e.Trace).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.logger.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.event(e.Err).Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.logger.Error().Err(e.StartErr).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.event(e.Err).Msg("Rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.event(e.Err).Msg("Start failed")
		} else {
			l.logger.Info().Msg("Started")
		}
	case *fxevent.LoggerInitialized:
		l.event(e.Err).Str("function", e.ConstructorName).Msg("Logger initialized")
	}
}
