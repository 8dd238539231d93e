package paramtest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/pdfclown/lib-testcommons/testcommons"
)

// EnvClipboard opts generated expected-result source into the system
// clipboard instead of the error stream. Meant for interactive sessions
// where the next step is pasting the block back into the test source.
const EnvClipboard = "TESTCOMMONS_CLIPBOARD"

// groupSeparator visually splits outer-dimension groups in Cartesian
// generation comments.
const groupSeparator = "// ----------------------------------------"

// ErrGenerationComplete is returned when a generator is driven past its
// expected count.
var ErrGenerationComplete = errors.New("expected-results generation already complete")

// ErrGenerationAborted is returned when a generator is driven after an
// earlier generation call panicked.
var ErrGenerationAborted = errors.New("expected-results generation aborted")

// ExpectedGenerator emits the source code of a missing expected list, one
// entry per consumed tuple. It advances an index from -1 through count-1;
// reaching the last entry completes the generation and triggers the flush.
//
// Generator state is confined to the stream that created it, so concurrent
// streams (parallel tests) can generate independently.
type ExpectedGenerator struct {
	mu    sync.Mutex
	cfg   *StreamConfig
	sizes []int
	count int

	index    int
	lines    []string
	complete bool
	aborted  bool
}

func newExpectedGenerator(cfg *StreamConfig, sizes []int, count int) *ExpectedGenerator {
	return &ExpectedGenerator{
		cfg:   cfg,
		sizes: sizes,
		count: count,
		index: -1,
	}
}

// Generate buffers the comment and literal source for the next expected
// entry, derived from the actual outcome and the argument feed.
func (g *ExpectedGenerator) Generate(actual any, feed []Argument) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted {
		return ErrGenerationAborted
	}

	if g.complete {
		return ErrGenerationComplete
	}

	g.index++
	g.lines = append(g.lines, g.comments(feed)...)
	g.lines = append(g.lines, expectedLiteral(actual)+",")

	if g.index == g.count-1 {
		g.complete = true
	}

	return nil
}

// Done reports whether the whole expected list has been generated.
func (g *ExpectedGenerator) Done() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.complete
}

// Abort terminates generation so a failed run cannot leak half-built state
// into later assertions on the same stream.
func (g *ExpectedGenerator) Abort() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.aborted = true
}

// Flush emits the buffered source block: to the system clipboard when the
// interactive override is active (EnvClipboard set, clipboard supported,
// not disabled via WithoutClipboard), otherwise to the configured sink
// (default: standard error). The block is emitted once, as a whole, only
// after the entire expected list has been generated.
func (g *ExpectedGenerator) Flush() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.complete {
		return errors.New("expected-results generation incomplete")
	}

	block := strings.Join(g.lines, "\n") + "\n"

	if g.clipboardActive() {
		if err := clipboard.WriteAll(block); err == nil {
			return nil
		}
		// Clipboard trouble should never lose the generated code.
	}

	sink := g.cfg.sink
	if sink == nil {
		sink = io.Writer(os.Stderr)
	}

	_, err := io.WriteString(sink, block)

	return err
}

func (g *ExpectedGenerator) clipboardActive() bool {
	if g.cfg.noClipboard || clipboard.Unsupported {
		return false
	}

	active, err := strconv.ParseBool(os.Getenv(EnvClipboard))

	return err == nil && active
}

// comments renders the argument comment lines for the current index.
//
// Cartesian streams group hierarchically: each dimension's comment is
// emitted only when that dimension's value changes, indented by depth, with
// a separator between outermost groups. Simple streams emit one flat
// comment per tuple.
func (g *ExpectedGenerator) comments(feed []Argument) []string {
	if g.cfg.strategy == strategySimple {
		parts := make([]string, len(feed))
		for k, arg := range feed {
			parts[k] = fmt.Sprintf("arg%d[%d]: %s", k, g.index, g.abbreviate(arg.Label))
		}

		return []string{"// " + strings.Join(parts, ", ")}
	}

	indexes := g.cfg.tupleIndexes(g.index, g.sizes)
	stride := 1
	strides := make([]int, len(g.sizes))

	for k := len(g.sizes) - 1; k >= 0; k-- {
		strides[k] = stride
		stride *= g.sizes[k]
	}

	var lines []string

	for level, arg := range feed {
		if g.index%strides[level] != 0 {
			continue
		}

		if level == 0 && g.index > 0 {
			lines = append(lines, groupSeparator)
		}

		lines = append(lines, fmt.Sprintf("// %sarg%d[%d]: %s",
			strings.Repeat("  ", level), level, indexes[level], g.abbreviate(arg.Label)))
	}

	return lines
}

// abbreviate shortens a comment value to the configured width. Generated
// literals are never abbreviated, only their comments.
func (g *ExpectedGenerator) abbreviate(s string) string {
	return testcommons.Abbreviate(s, g.cfg.commentWidth)
}

// expectedLiteral renders the source-code form of one expected entry.
func expectedLiteral(actual any) string {
	if f, ok := asFailure(actual); ok {
		return fmt.Sprintf("paramtest.Fail(%q, %q)", f.Kind, f.Message)
	}

	return "paramtest.Success(" + sourceLiteral(actual) + ")"
}

// sourceLiteral renders a value as Go source. Strings are quoted at full
// fidelity; everything without a clean literal form falls back to the
// %#v Go-syntax representation.
func sourceLiteral(v any) string {
	switch value := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(value)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%v", value)
	case float32, float64:
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%#v", value)
	}
}
