package exceptional

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/taxonomy"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func useDefault(t *testing.T) *Composer {
	t.Helper()
	previous := Default()
	composer := newTestComposer(t)
	SetDefault(composer)
	t.Cleanup(func() { SetDefault(previous) })
	return composer
}

func TestDefault(t *testing.T) {
	require.NotNil(t, Default())
	require.Same(t, Default(), Default())
	composer := useDefault(t)
	require.Same(t, composer, Default())
	require.Panics(t, func() { SetDefault(nil) })
}

func TestCompose(t *testing.T) {
	useDefault(t)
	err, failure := Compose("ResourceNotFound", map[string]any{"message": "user not found", "data": 7})
	require.NoError(t, failure)
	require.Equal(t, 404, err.GetHttpStatus())
	require.Equal(t, 7, err.GetData())
	require.ErrorIs(t, err, taxonomy.NotFound)
	// bare names are local to the package of the caller
	require.Equal(t, []string{"thanhminhmr.go_exceptional.exceptional.ResourceNotFoundException"}, err.GetKinds())
	frame, _ := err.GetStackFrame()
	require.Equal(t, "github.com/thanhminhmr/go-exceptional/exceptional.TestCompose", frame.Function)

	_, failure = Compose("InvalidArgument,OutOfBounds", nil)
	require.ErrorIs(t, failure, ErrConflict)
}

func TestCreatePanicsOnMisconfiguration(t *testing.T) {
	useDefault(t)
	err := Create("/Exceptional/BadRequest", map[string]any{"message": "bad input"})
	require.Equal(t, "BadRequest: bad input", err.Error())
	frame, _ := err.GetStackFrame()
	require.Equal(t, "github.com/thanhminhmr/go-exceptional/exceptional.TestCreatePanicsOnMisconfiguration", frame.Function)

	require.Panics(t, func() { Create("Bad Request", nil) })
	require.Panics(t, func() { Errorf("InvalidArgument,OutOfBounds", "%d", 1) })
}

func TestErrorf(t *testing.T) {
	useDefault(t)
	err := Errorf("/Exceptional/Forbidden", "user %s cannot %s", "alice", "delete")
	require.Equal(t, "user alice cannot delete", err.GetMessage())
	require.Equal(t, 403, err.GetHttpStatus())
	require.ErrorIs(t, err, taxonomy.Unauthorized)
}

func TestRecover(t *testing.T) {
	composer := newTestComposer(t)
	require.Nil(t, composer.Recover(nil))

	recovered := func() (err exception.Exception) {
		defer func() {
			err = composer.Recover(recover())
		}()
		panic("boom")
	}()
	require.NotNil(t, recovered)
	require.True(t, recovered.Satisfies("Error"))
	require.Equal(t, "ErrorException", recovered.GetBaseType())
	require.Equal(t, "boom", recovered.GetMessage())
	require.Equal(t, "boom", recovered.GetData())
	require.Nil(t, recovered.GetPrevious())

	wrapped := composer.Recover(io.ErrClosedPipe)
	require.ErrorIs(t, wrapped, io.ErrClosedPipe)
	require.ErrorIs(t, wrapped, taxonomy.Error)
	require.Same(t, recovered.GetShape(), wrapped.GetShape())

	composed := mustCompose(t, composer, "Io")
	require.Same(t, composed, composer.Recover(composed))
}

func TestPackageRecover(t *testing.T) {
	useDefault(t)
	require.Nil(t, Recover(nil))
	err := Recover(io.EOF)
	require.ErrorIs(t, err, io.EOF)
	frame, _ := err.GetStackFrame()
	require.Equal(t, "github.com/thanhminhmr/go-exceptional/exceptional.TestPackageRecover", frame.Function)
}

func TestDefaultComposerReportsFallbacks(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)

	composer := newDefaultComposer(&logger, func(*Config, ...string) error {
		return errors.New("EXCEPTIONAL_STACK_DEPTH out of range")
	})
	require.NotNil(t, composer)
	require.Contains(t, buffer.String(), "Invalid composer configuration, using defaults")
	require.Contains(t, buffer.String(), "EXCEPTIONAL_STACK_DEPTH out of range")

	buffer.Reset()
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	composer = newDefaultComposer(&logger, func(config *Config, _ ...string) error {
		*config = *defaultConfig()
		config.Definitions = missing
		return nil
	})
	require.NotNil(t, composer)
	require.Contains(t, buffer.String(), "Cannot load definitions, using defaults")
	require.Contains(t, buffer.String(), missing)
	_, failure := composer.CreateFrom("Io", nil)
	require.NoError(t, failure)

	buffer.Reset()
	composer = newDefaultComposer(&logger, func(config *Config, _ ...string) error {
		*config = *defaultConfig()
		return nil
	})
	require.NotNil(t, composer)
	require.Empty(t, buffer.String())
}
