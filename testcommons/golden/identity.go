package golden

import (
	"regexp"
	"runtime"
	"strings"
)

// TestIDResolver recovers the identifier of the currently executing test.
// Identifiers are slash-separated so update-filter globs can qualify them
// by package depth (e.g. "render/TestComposition").
type TestIDResolver interface {
	CurrentTestID() (string, bool)
}

// FixedID returns a resolver that always yields the given identifier. Use
// it where the caller already knows its own identity (e.g. from t.Name()).
//
//nolint:ireturn
func FixedID(id string) TestIDResolver {
	return fixedID(id)
}

type fixedID string

func (id fixedID) CurrentTestID() (string, bool) {
	return string(id), id != ""
}

// StackResolver locates the running test by walking the call stack to the
// first function following Go's test-method naming convention. This lets
// shared assertion helpers sit several frames below the test body without
// hard-coding their callers.
type StackResolver struct{}

// Compile-time assertion: StackResolver implements TestIDResolver.
var _ TestIDResolver = StackResolver{}

// testFuncPattern matches a frame like
// "github.com/acme/proj/render.TestComposition" or its subtest closures
// ("...TestComposition.func1").
var testFuncPattern = regexp.MustCompile(`\.(Test[A-Z_]\w*)(?:\.func\d+)*$`)

const maxStackDepth = 64

// CurrentTestID walks the calling stack and returns the identifier of the
// innermost Test function, as "<package path>/<TestName>".
func (StackResolver) CurrentTestID() (string, bool) {
	pc := make([]uintptr, maxStackDepth)

	// Skip runtime.Callers, this method, and its direct caller inside the
	// asserter; deeper helper frames are filtered by name anyway.
	n := runtime.Callers(2, pc)
	if n == 0 {
		return "", false
	}

	frames := runtime.CallersFrames(pc[:n])

	for {
		frame, more := frames.Next()

		if match := testFuncPattern.FindStringSubmatch(frame.Function); match != nil {
			pkg := strings.TrimSuffix(frame.Function, match[0])

			return pkg + "/" + match[1], true
		}

		if !more {
			return "", false
		}
	}
}
