package paramtest

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// FeedFunc supplies the labeled arguments driving expected-result
// generation for one tuple. Tuple.Feed is the canonical implementation.
type FeedFunc func() []Argument

// AssertParameterized consumes one tuple's actual outcome.
//
// In normal mode it asserts the outcome against the tuple's expectation:
// thrown failures must match kind and message exactly, regular values go
// through strict equality or the expectation's custom matcher.
//
// In generation mode (the tuple belongs to a stream built with a nil
// expected list) nothing is asserted. A nil feed makes the call a
// deliberate no-op, so secondary assertions inside a test body do not ingest
// extra generation entries; the one call per tuple that passes a feed
// drives the generator, and completion of the last tuple flushes the
// generated source. Generator state is detached even if generation
// panics, so a failed run cannot poison later assertions.
func AssertParameterized(tb testing.TB, tuple Tuple, actual any, feed FeedFunc) {
	tb.Helper()

	if tuple.gen != nil {
		assertGenerating(tb, tuple, actual, feed)

		return
	}

	expected := tuple.Expected
	if expected == nil {
		tb.Fatalf("paramtest: tuple %d has no expected outcome (stream built without expectations?)", tuple.Index)

		return
	}

	if failure, ok := asFailure(actual); ok {
		assertFailure(tb, tuple, expected, failure)

		return
	}

	if thrown, ok := expected.Thrown(); ok {
		tb.Fatalf("paramtest: tuple %d (%s): expected failure %v, but succeeded with:\n%s",
			tuple.Index, tuple.Name(), thrown, spew.Sdump(actual))

		return
	}

	if expected.match != nil {
		if err := expected.match(expected.Returned(), actual); err != nil {
			tb.Fatalf("paramtest: tuple %d (%s): %v", tuple.Index, tuple.Name(), err)
		}

		return
	}

	require.Equalf(tb, expected.Returned(), actual, "tuple %d (%s)", tuple.Index, tuple.Name())
}

// assertFailure compares an actual thrown failure against the expectation,
// naming the differing field.
func assertFailure(tb testing.TB, tuple Tuple, expected *Expected, actual Failure) {
	tb.Helper()

	thrown, ok := expected.Thrown()
	if !ok {
		tb.Fatalf("paramtest: tuple %d (%s): expected success %s, but failed with %v",
			tuple.Index, tuple.Name(), sourceLiteral(expected.Returned()), actual)

		return
	}

	if thrown.Kind != actual.Kind {
		tb.Fatalf("paramtest: tuple %d (%s): failure kind differs: expected %q, actual %q",
			tuple.Index, tuple.Name(), thrown.Kind, actual.Kind)

		return
	}

	if thrown.Message != actual.Message {
		tb.Fatalf("paramtest: tuple %d (%s): failure message differs: expected %q, actual %q",
			tuple.Index, tuple.Name(), thrown.Message, actual.Message)
	}
}

// assertGenerating forwards the actual outcome to the stream's generator
// and flushes once the whole expected list has been produced.
func assertGenerating(tb testing.TB, tuple Tuple, actual any, feed FeedFunc) {
	tb.Helper()

	if feed == nil {
		// Secondary assertion during generation: deliberate no-op.
		return
	}

	gen := tuple.gen

	defer func() {
		if r := recover(); r != nil {
			gen.Abort()
			panic(r)
		}
	}()

	if err := gen.Generate(actual, feed()); err != nil {
		tb.Fatalf("paramtest: tuple %d (%s): %v", tuple.Index, tuple.Name(), err)

		return
	}

	if gen.Done() {
		if err := gen.Flush(); err != nil {
			tb.Errorf("paramtest: emitting generated expected results: %v", err)
		}
	}
}

// asFailure recognizes an actual outcome captured as a Failure.
func asFailure(actual any) (Failure, bool) {
	switch f := actual.(type) {
	case Failure:
		return f, true
	case *Failure:
		if f != nil {
			return *f, true
		}
	}

	return Failure{}, false
}
