package paramtest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfclown/lib-testcommons/testcommons/safe"
)

// ErrInvalidStreamConfig is the sentinel error for broken stream
// definitions (mismatched list sizes, empty argument lists). These indicate
// a defective test and always fail fast.
var ErrInvalidStreamConfig = errors.New("invalid arguments stream")

// configError wraps a stream-definition defect.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStreamConfig, fmt.Sprintf(format, args...))
}

// Tuple is one parameterized-test invocation: its expected outcome plus the
// argument values that produce it. In generation mode Expected is nil (the
// void marker) and the tuple carries the stream's generator instead.
type Tuple struct {
	Index    int
	Expected *Expected
	Args     []Argument

	gen *ExpectedGenerator
}

// Name joins the argument labels into a display name for subtests.
func (tu Tuple) Name() string {
	labels := make([]string, len(tu.Args))
	for i, arg := range tu.Args {
		labels[i] = arg.Label
	}

	return strings.Join(labels, ",")
}

// Feed supplies the labeled arguments for expected-result generation. Pass
// it (as a method value) to AssertParameterized on the one assertion per
// tuple that should drive generation; pass nil on secondary assertions.
func (tu Tuple) Feed() []Argument {
	return tu.Args
}

// Generating reports whether this tuple belongs to a generation-mode stream.
func (tu Tuple) Generating() bool {
	return tu.gen != nil
}

// Stream builds one tuple per combination of the argument lists, paired
// with the expected outcomes.
//
// A nil expected list enters generation mode: the returned tuples carry no
// expectations, and the assertions consuming them emit copy-pasteable
// source code for the missing expected list instead of asserting.
func Stream(cfg *StreamConfig, expected []*Expected, argLists ...[]any) ([]Tuple, error) {
	if cfg == nil {
		return nil, configError("nil config")
	}

	if len(argLists) == 0 {
		return nil, configError("no argument lists")
	}

	converted, sizes, err := convertLists(cfg, argLists)
	if err != nil {
		return nil, err
	}

	count, err := expectedCount(cfg, sizes)
	if err != nil {
		return nil, err
	}

	var gen *ExpectedGenerator

	if expected == nil {
		gen = newExpectedGenerator(cfg, sizes, count)
	} else if len(expected) != count {
		return nil, configError("expected list size %d does not match computed count %d", len(expected), count)
	}

	if expected != nil {
		expected = convertExpected(cfg, expected)
	}

	tuples := make([]Tuple, count)

	for i := range count {
		tu := Tuple{Index: i, gen: gen}
		if expected != nil {
			tu.Expected = expected[i]
		}

		tu.Args = make([]Argument, len(converted))
		for k, indexes := 0, cfg.tupleIndexes(i, sizes); k < len(converted); k++ {
			tu.Args[k] = converted[k][indexes[k]]
		}

		tuples[i] = tu
	}

	return tuples, nil
}

// MustStream is Stream for test bodies: definition defects fail tb
// immediately.
func MustStream(tb testing.TB, cfg *StreamConfig, expected []*Expected, argLists ...[]any) []Tuple {
	tb.Helper()

	tuples, err := Stream(cfg, expected, argLists...)
	if err != nil {
		tb.Fatalf("paramtest: %v", err)
	}

	return tuples
}

// convertLists applies the per-list-index converter and normalizes every
// element into a labeled Argument.
func convertLists(cfg *StreamConfig, argLists [][]any) ([][]Argument, []int, error) {
	converted := make([][]Argument, len(argLists))
	sizes := make([]int, len(argLists))

	for k, list := range argLists {
		if len(list) == 0 {
			return nil, nil, configError("argument list %d is empty", k)
		}

		sizes[k] = len(list)
		converted[k] = make([]Argument, len(list))

		for i, raw := range list {
			// Converter list indices are 1-based; index 0 is the expected list.
			converted[k][i] = asArgument(cfg.convert(k+1, raw))
		}
	}

	return converted, sizes, nil
}

// convertExpected applies the converter (list index 0) to the value of each
// success expectation. Failure expectations pass through unchanged.
func convertExpected(cfg *StreamConfig, expected []*Expected) []*Expected {
	if cfg.converter == nil {
		return expected
	}

	out := make([]*Expected, len(expected))

	for i, e := range expected {
		if e.IsSuccess() {
			converted := Success(cfg.convert(0, e.Returned()))
			converted.match = e.match
			out[i] = converted
		} else {
			out[i] = e
		}
	}

	return out
}

// expectedCount computes the required expected-list size for the strategy.
func expectedCount(cfg *StreamConfig, sizes []int) (int, error) {
	switch cfg.strategy {
	case strategySimple:
		common := sizes[0]

		for k, size := range sizes {
			if size != common {
				return 0, configError("argument list %d has size %d, want common size %d", k, size, common)
			}
		}

		return common, nil
	default:
		count, err := safe.ProductInt(sizes...)
		if err != nil {
			return 0, configError("combination count overflows: %v", err)
		}

		return count, nil
	}
}

// tupleIndexes decodes tuple index i into per-list element indices.
func (cfg *StreamConfig) tupleIndexes(i int, sizes []int) []int {
	indexes := make([]int, len(sizes))

	if cfg.strategy == strategySimple {
		for k := range indexes {
			indexes[k] = i
		}

		return indexes
	}

	// Mixed-radix decode, last list fastest (odometer order).
	rem := i
	for k := len(sizes) - 1; k >= 0; k-- {
		indexes[k] = rem % sizes[k]
		rem /= sizes[k]
	}

	return indexes
}
