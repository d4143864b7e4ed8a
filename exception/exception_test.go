package exception_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

type testShape struct {
	name  string
	kinds []string
}

func (s *testShape) Name() string      { return s.name }
func (s *testShape) Signature() string { return "test:" + s.name }
func (s *testShape) Base() string      { return "RuntimeException" }
func (s *testShape) Kinds() []string   { return s.kinds }
func (s *testShape) Satisfies(kind string) bool {
	return slices.Contains(s.kinds, kind)
}

func TestNewException(t *testing.T) {
	cause := errors.New("disk full")
	shape := &testShape{name: "NotFound", kinds: []string{"NotFound", "Runtime"}}
	err := exception.New(shape, exception.Properties{
		Message:  "user missing",
		Code:     7,
		Http:     404,
		Severity: 2,
		Data:     "payload",
		Previous: cause,
		File:     "repo.go",
		Line:     12,
		Context:  map[string]any{"user": 42},
	})

	require.Equal(t, "NotFound: user missing", err.Error())
	require.Equal(t, "NotFound", err.GetType())
	require.Equal(t, "user missing", err.GetMessage())
	require.Equal(t, 7, err.GetCode())
	require.Equal(t, 404, err.GetHttpStatus())
	require.Equal(t, 2, err.GetSeverity())
	require.Equal(t, "payload", err.GetData())
	require.Equal(t, "repo.go", err.GetFile())
	require.Equal(t, 12, err.GetLine())
	require.Equal(t, "RuntimeException", err.GetBaseType())
	require.Equal(t, []string{"NotFound", "Runtime"}, err.GetKinds())
	require.Same(t, shape, err.GetShape())
	require.ErrorIs(t, err, cause)
	require.Nil(t, err.GetStackTrace())
	_, ok := err.GetStackFrame()
	require.False(t, ok)
}

func TestExceptionContextIsCopied(t *testing.T) {
	err := exception.New(&testShape{name: "Io"}, exception.Properties{Context: map[string]any{"key": "value"}})
	context := err.GetContext()
	context["key"] = "changed"
	require.Equal(t, "value", err.GetContext()["key"])
	require.Nil(t, exception.New(&testShape{name: "Io"}, exception.Properties{}).GetContext())
}

func TestExceptionMutableFields(t *testing.T) {
	err := exception.New(&testShape{name: "Io"}, exception.Properties{Http: 500})
	require.Same(t, err, err.SetHttpStatus(503))
	require.Same(t, err, err.SetData(map[string]int{"attempt": 3}))
	require.Equal(t, 503, err.GetHttpStatus())
	require.Equal(t, map[string]int{"attempt": 3}, err.GetData())
}

func TestExceptionIs(t *testing.T) {
	shape := &testShape{name: "NotFound", kinds: []string{"NotFound", "Runtime"}}
	first := exception.New(shape, exception.Properties{Message: "first"})
	second := exception.New(shape, exception.Properties{Message: "second"})
	other := exception.New(&testShape{name: "Io", kinds: []string{"Io"}}, exception.Properties{})

	require.ErrorIs(t, first, taxonomy.NotFound)
	require.ErrorIs(t, first, taxonomy.Runtime)
	require.NotErrorIs(t, first, taxonomy.Io)
	require.ErrorIs(t, first, second)
	require.NotErrorIs(t, first, other)

	var target exception.Exception
	require.ErrorAs(t, error(second), &target)
	require.Equal(t, "second", target.GetMessage())
}

func TestExceptionWithoutMessage(t *testing.T) {
	require.Equal(t, "Io", exception.New(&testShape{name: "Io"}, exception.Properties{}).Error())
}

func TestNewWithoutShapePanics(t *testing.T) {
	require.Panics(t, func() { exception.New(nil, exception.Properties{}) })
}
