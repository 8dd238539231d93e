package paramtest

import (
	"fmt"
	"strings"
)

// Failure describes a thrown error in a comparable, string-based form so it
// can appear interchangeably with regular values inside one expected-results
// list. Two failures are equal when both kind and message are equal.
//
// Keeping only the kind name and message deliberately loses the original
// error object; that is the trade-off that makes failures literal-source
// generatable and strictly comparable.
type Failure struct {
	Kind    string
	Message string
}

// String renders the failure in its constructor-call form.
func (f Failure) String() string {
	return fmt.Sprintf("Fail(%q, %q)", f.Kind, f.Message)
}

// MatchFunc compares an expected value against an actual one, returning a
// non-nil error describing the difference. Used in place of strict equality
// when set via Expected.Match.
type MatchFunc func(expected, actual any) error

// Expected is the tagged outcome of one parameterized-test invocation:
// either a regular returned value or a thrown Failure, never both.
type Expected struct {
	returned any
	thrown   *Failure
	match    MatchFunc
}

// Success creates the expectation of a regular result value.
func Success(v any) *Expected {
	return &Expected{returned: v}
}

// Fail creates the expectation of a thrown failure with the given kind name
// and message.
func Fail(kind, message string) *Expected {
	return &Expected{thrown: &Failure{Kind: kind, Message: message}}
}

// IsSuccess reports whether this expectation is a regular value.
func (e *Expected) IsSuccess() bool {
	return e != nil && e.thrown == nil
}

// IsFailure reports whether this expectation is a thrown failure.
func (e *Expected) IsFailure() bool {
	return e != nil && e.thrown != nil
}

// Returned yields the expected regular value (nil for failures).
func (e *Expected) Returned() any {
	if e == nil || e.thrown != nil {
		return nil
	}

	return e.returned
}

// Thrown yields the expected failure and whether this expectation is one.
func (e *Expected) Thrown() (Failure, bool) {
	if e == nil || e.thrown == nil {
		return Failure{}, false
	}

	return *e.thrown, true
}

// Match sets a custom matcher used in place of strict equality. Fluent; it
// must be called before the tuple is consumed.
func (e *Expected) Match(fn MatchFunc) *Expected {
	e.match = fn

	return e
}

// Argument is a labeled argument value. The label is used both as the
// test-invocation display name and in generated expected-result comments,
// which is why it exists as its own type instead of a generic named pair.
type Argument struct {
	Label string
	Value any
}

// Arg wraps a value with an explicit non-blank label.
func Arg(label string, value any) Argument {
	if strings.TrimSpace(label) == "" {
		label = fmt.Sprintf("%v", value)
	}

	return Argument{Label: label, Value: value}
}

// String returns the label.
func (a Argument) String() string {
	return a.Label
}

// asArgument normalizes a raw list element: Argument values pass through,
// anything else gets a label derived from its value.
func asArgument(v any) Argument {
	if arg, ok := v.(Argument); ok {
		return arg
	}

	label := fmt.Sprintf("%v", v)
	if strings.TrimSpace(label) == "" {
		label = fmt.Sprintf("%q", label)
	}

	return Argument{Label: label, Value: v}
}
