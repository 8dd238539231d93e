package paramtest

import (
	"fmt"
	"io/fs"
	"reflect"
	"strings"
)

// Eval runs fn and captures its outcome for AssertParameterized: the
// success value as-is, or a returned error / recovered panic as a Failure.
//
// Known tunneling wrappers are unwrapped to their underlying cause before
// capture, so helpers invoking the code under test through adapting call
// paths do not mask the real failure kind: error-valued panics (Go's usual
// exception tunnel) yield the panicked error, and *fs.PathError I/O
// wrappers yield their embedded operation error.
func Eval(fn func() (any, error)) (result any) {
	defer func() {
		if r := recover(); r != nil {
			result = failureOfRecovered(r)
		}
	}()

	v, err := fn()
	if err != nil {
		return FailureOf(err)
	}

	return v
}

// FailureOf captures an error as a Failure, unwrapping tunneling wrappers
// first.
func FailureOf(err error) Failure {
	err = unwrapTunneled(err)

	return Failure{Kind: kindName(err), Message: err.Error()}
}

// unwrapTunneled strips wrapper kinds that exist only to adapt a call path.
func unwrapTunneled(err error) error {
	for {
		pathErr, ok := err.(*fs.PathError)
		if !ok || pathErr.Err == nil {
			return err
		}

		err = pathErr.Err
	}
}

// failureOfRecovered converts a recovered panic value.
func failureOfRecovered(r any) Failure {
	if err, ok := r.(error); ok {
		return FailureOf(err)
	}

	return Failure{Kind: kindName(r), Message: fmt.Sprint(r)}
}

// kindName yields the comparable, literal-source-friendly kind of a value:
// its concrete type name without pointer markers.
func kindName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return strings.TrimPrefix(t.String(), "*")
}
