package exception_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exceptional/exception"
)

const errTest = exception.String("test failure")

func TestStringRefinements(t *testing.T) {
	cause := errors.New("root cause")
	err := errTest.SetMessage("item %d", 3).AddCause(nil, cause)

	require.Equal(t, "test failure: item 3", err.Error())
	require.ErrorIs(t, err, errTest)
	require.ErrorIs(t, err, cause)
	require.Equal(t, []error{cause}, err.Unwrap())
	require.NotErrorIs(t, err, exception.String("other failure"))
}

func TestStringAddCauseOnly(t *testing.T) {
	err := errTest.AddCause()
	require.Equal(t, "test failure", err.Error())
	require.Empty(t, err.Unwrap())
	require.ErrorIs(t, err, errTest)
}

func TestFailureAddCauseDoesNotShareBacking(t *testing.T) {
	base := errTest.AddCause(errors.New("a"))
	first := base.AddCause(errors.New("b"))
	second := base.AddCause(errors.New("c"))
	require.Len(t, base.Unwrap(), 1)
	require.Equal(t, "b", first.Unwrap()[1].Error())
	require.Equal(t, "c", second.Unwrap()[1].Error())
}
