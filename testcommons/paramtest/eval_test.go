//go:build unit

package paramtest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

type timeoutError struct{ op string }

func (e *timeoutError) Error() string { return e.op + " timed out" }

func TestEval_PassesSuccessThrough(t *testing.T) {
	t.Parallel()

	result := Eval(func() (any, error) { return 42, nil })
	require.Equal(t, 42, result)

	result = Eval(func() (any, error) { return nil, nil })
	require.Nil(t, result)
}

func TestEval_CapturesReturnedError(t *testing.T) {
	t.Parallel()

	result := Eval(func() (any, error) { return nil, errors.New("boom") })
	require.Equal(t, Failure{Kind: "errors.errorString", Message: "boom"}, result)
}

func TestEval_CapturesTypedError(t *testing.T) {
	t.Parallel()

	result := Eval(func() (any, error) { return nil, &timeoutError{op: "read"} })
	require.Equal(t, Failure{Kind: "paramtest.timeoutError", Message: "read timed out"}, result)
}

func TestEval_UnwrapsPathErrorTunnels(t *testing.T) {
	t.Parallel()

	cause := &timeoutError{op: "open"}
	wrapped := &fs.PathError{Op: "open", Path: "/tmp/x", Err: cause}

	result := Eval(func() (any, error) { return nil, wrapped })
	require.Equal(t, Failure{Kind: "paramtest.timeoutError", Message: "open timed out"}, result)

	// Nested tunnels unwrap all the way down.
	nested := &fs.PathError{Op: "stat", Path: "/tmp/y", Err: wrapped}
	require.Equal(t, Failure{Kind: "paramtest.timeoutError", Message: "open timed out"}, FailureOf(nested))
}

func TestEval_RecoversErrorPanic(t *testing.T) {
	t.Parallel()

	result := Eval(func() (any, error) { panic(errors.New("panicked")) })
	require.Equal(t, Failure{Kind: "errors.errorString", Message: "panicked"}, result)
}

func TestEval_RecoversPlainPanic(t *testing.T) {
	t.Parallel()

	result := Eval(func() (any, error) { panic("raw message") })
	require.Equal(t, Failure{Kind: "string", Message: "raw message"}, result)

	result = Eval(func() (any, error) { panic(7) })
	require.Equal(t, Failure{Kind: "int", Message: "7"}, result)
}

func TestFailure_StringRendersConstructorForm(t *testing.T) {
	t.Parallel()

	f := Failure{Kind: "errors.errorString", Message: "boom"}
	require.Equal(t, `Fail("errors.errorString", "boom")`, f.String())
}

func TestExpected_Accessors(t *testing.T) {
	t.Parallel()

	success := Success("v")
	require.True(t, success.IsSuccess())
	require.False(t, success.IsFailure())
	require.Equal(t, "v", success.Returned())

	_, ok := success.Thrown()
	require.False(t, ok)

	failed := Fail("k", "m")
	require.True(t, failed.IsFailure())
	require.False(t, failed.IsSuccess())
	require.Nil(t, failed.Returned())

	thrown, ok := failed.Thrown()
	require.True(t, ok)
	require.Equal(t, Failure{Kind: "k", Message: "m"}, thrown)

	var none *Expected
	require.False(t, none.IsSuccess())
	require.False(t, none.IsFailure())
}
