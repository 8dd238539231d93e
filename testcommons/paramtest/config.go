package paramtest

import (
	"io"
)

// defaultCommentWidth bounds argument values rendered in generated
// comments. Literals are never abbreviated, only their comments.
const defaultCommentWidth = 50

// Converter transforms one list element before tuple assembly. listIndex 0
// is the expected list; argument lists follow as 1..N. The same converter
// feeds both display-name formatting and expected-result generation, so the
// two can never drift apart.
//
// On the expected list, only Success values are converted; Fail
// expectations pass through unchanged, since a Failure describes the
// outcome of a thrown error rather than a value the test computes with.
type Converter func(listIndex int, value any) any

// AndThen composes converters left-to-right: apply this one, then next.
func (c Converter) AndThen(next Converter) Converter {
	if c == nil {
		return next
	}

	if next == nil {
		return c
	}

	return func(listIndex int, value any) any {
		return next(listIndex, c(listIndex, value))
	}
}

// Compose composes converters right-to-left: apply prev, then this one.
func (c Converter) Compose(prev Converter) Converter {
	return prev.AndThen(c)
}

type strategy int

const (
	strategyCartesian strategy = iota
	strategySimple
)

// StreamConfig bundles the tuple-assembly strategy with conversion and
// generation settings.
type StreamConfig struct {
	strategy     strategy
	converter    Converter
	commentWidth int
	sink         io.Writer
	noClipboard  bool
}

// ConfigOption configures a StreamConfig.
type ConfigOption func(*StreamConfig)

// WithConverter applies the converter to every element of every list before
// tuples are built. Repeated options compose left-to-right.
func WithConverter(c Converter) ConfigOption {
	return func(cfg *StreamConfig) { cfg.converter = cfg.converter.AndThen(c) }
}

// WithCommentWidth overrides the abbreviation width of argument values in
// generated comments.
func WithCommentWidth(width int) ConfigOption {
	return func(cfg *StreamConfig) { cfg.commentWidth = width }
}

// WithSink routes generated expected-result source code to w instead of the
// process standard error.
func WithSink(w io.Writer) ConfigOption {
	return func(cfg *StreamConfig) { cfg.sink = w }
}

// WithoutClipboard disables the interactive clipboard override for
// generated output.
func WithoutClipboard() ConfigOption {
	return func(cfg *StreamConfig) { cfg.noClipboard = true }
}

// Cartesian returns a configuration pairing every combination of argument
// values (odometer order, first list slowest). The expected list must hold
// exactly the product of the argument list sizes.
func Cartesian(opts ...ConfigOption) *StreamConfig {
	return newConfig(strategyCartesian, opts)
}

// Simple returns a configuration pairing argument values positionally. All
// lists, expected included, must share exactly one common size.
func Simple(opts ...ConfigOption) *StreamConfig {
	return newConfig(strategySimple, opts)
}

func newConfig(s strategy, opts []ConfigOption) *StreamConfig {
	cfg := &StreamConfig{strategy: s, commentWidth: defaultCommentWidth}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// convert applies the configured converter, if any.
func (cfg *StreamConfig) convert(listIndex int, value any) any {
	if cfg.converter == nil {
		return value
	}

	return cfg.converter(listIndex, value)
}
