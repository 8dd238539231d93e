package golden

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdfclown/lib-testcommons/testcommons"
	"github.com/pdfclown/lib-testcommons/testcommons/log"
)

// abbreviatedReportLines bounds the mismatch message surfaced to the test
// runner; the full report always lands in the assertion log.
const abbreviatedReportLines = 12

// Asserter orchestrates the golden-file lifecycle for one expected/actual
// resource pair: compare, and on failure either rebuild once or fail with a
// report.
//
// An Asserter is immutable after New; clone-style methods (Quiet) derive
// variants for nested assertions.
type Asserter struct {
	env        Environment
	comparator Comparator
	filter     *UpdateFilter
	resolver   TestIDResolver
	logger     log.Logger
	tb         testing.TB
	testID     string
	quiet      bool
}

// Option configures an Asserter.
type Option func(*Asserter)

// WithTB binds the owning test. Its name becomes the test identifier and
// Require* helpers fail through it.
func WithTB(tb testing.TB) Option {
	return func(a *Asserter) { a.tb = tb }
}

// WithTestID sets an explicit test identifier, overriding both the bound
// testing.TB and the stack resolver.
func WithTestID(id string) Option {
	return func(a *Asserter) { a.testID = id }
}

// WithComparator sets the content comparator (default Bytes).
func WithComparator(c Comparator) Option {
	return func(a *Asserter) { a.comparator = c }
}

// WithEnvironment sets the resource-resolution environment.
func WithEnvironment(env Environment) Option {
	return func(a *Asserter) { a.env = env }
}

// WithUpdateFilter sets the update filter (default: built from EnvUpdate).
func WithUpdateFilter(f *UpdateFilter) Option {
	return func(a *Asserter) { a.filter = f }
}

// WithResolver sets the test-identity resolver (default StackResolver).
func WithResolver(r TestIDResolver) Option {
	return func(a *Asserter) { a.resolver = r }
}

// WithLogger sets the logger used for lifecycle and diagnostic events,
// overriding any logger carried by the assertion context
// (testcommons.ContextWithLogger).
func WithLogger(logger log.Logger) Option {
	return func(a *Asserter) { a.logger = logger }
}

// New creates an Asserter. Without options it compares byte-exactly against
// resources under "testdata", with updates controlled by EnvUpdate.
func New(opts ...Option) *Asserter {
	asserter := &Asserter{
		env:        NewEnvironment(),
		comparator: Bytes(),
		resolver:   StackResolver{},
	}

	for _, opt := range opts {
		opt(asserter)
	}

	if asserter.filter == nil {
		asserter.filter = NewUpdateFilter(context.Background(), os.Getenv(EnvUpdate), asserter.logger)
	}

	return asserter
}

// Quiet returns a clone whose terminal failures skip the assertion-log
// report. Nested assertions use it so one mismatch is reported once.
func (a *Asserter) Quiet() *Asserter {
	clone := *a
	clone.quiet = true

	return &clone
}

// log resolves the event logger: an explicit WithLogger wins, otherwise the
// logger carried by ctx (no-op when absent).
//
//nolint:ireturn
func (a *Asserter) log(ctx context.Context) log.Logger {
	if a.logger != nil {
		return a.logger
	}

	return testcommons.LoggerFromContext(ctx)
}

// Assert runs the golden-file lifecycle for the named resource and returns
// the terminal error, if any:
//
//  1. load the expected resource from the source path and compare;
//  2. on success, return nil;
//  3. on mismatch (or missing resource), rebuild it once if the test is
//     update-eligible, then compare again to self-check the write path;
//  4. otherwise save the actual content to the _UNEXPECTED sidecar
//     (best-effort) and return a *MismatchError.
//
// The loop is hard-bounded to two comparison attempts.
func (a *Asserter) Assert(ctx context.Context, name string, actual []byte) error {
	sourcePath := a.env.SourcePath(name)
	rebuilt := false

	for {
		expected, loadErr := os.ReadFile(sourcePath)

		var cmpErr error

		switch {
		case loadErr != nil:
			cmpErr = fmt.Errorf("expected resource unavailable: %w", loadErr)
		default:
			cmpErr = a.comparator.Compare(expected, actual)
		}

		if cmpErr == nil {
			if rebuilt {
				a.log(ctx).Log(ctx, log.LevelInfo, "expected resource rebuilt and verified",
					log.String("resource", name))
			}

			return nil
		}

		testID := a.currentTestID()

		if rebuilt || !a.filter.IsUpdatable(testID) {
			if loadErr == nil {
				a.saveUnexpected(ctx, name, actual)
			}

			return a.fail(ctx, name, testID, cmpErr)
		}

		if err := a.WriteExpected(ctx, name, actual); err != nil {
			return err
		}

		rebuilt = true
	}
}

// Require is Assert for tests: a terminal failure fails the bound
// testing.TB (WithTB) with the abbreviated report.
func (a *Asserter) Require(ctx context.Context, name string, actual []byte) {
	if a.tb != nil {
		a.tb.Helper()
	}

	if err := a.Assert(ctx, name, actual); err != nil {
		if a.tb == nil {
			panic(err)
		}

		a.tb.Fatal(err.Error())
	}
}

// WriteExpected writes new expected content for the named resource: the
// version-controlled source file first, then a byte-identical copy at the
// build-output target path. The two failure modes are distinguishable
// (*WriteSourceError is fatal; *CopyTargetError self-heals on re-run).
func (a *Asserter) WriteExpected(ctx context.Context, name string, content []byte) error {
	sourcePath := a.env.SourcePath(name)
	targetPath := a.env.TargetPath(name)

	if err := atomicWrite(sourcePath, content); err != nil {
		return &WriteSourceError{Path: sourcePath, Err: err}
	}

	a.log(ctx).Log(ctx, log.LevelInfo, "expected resource updated",
		log.String("resource", name), log.String("path", sourcePath))

	if err := copyFile(sourcePath, targetPath); err != nil {
		return &CopyTargetError{SourcePath: sourcePath, TargetPath: targetPath, Err: err}
	}

	return nil
}

// saveUnexpected persists the mismatching actual content next to the
// expected resource for diagnosis. Best-effort: failures are logged at
// warning level, never propagated.
func (a *Asserter) saveUnexpected(ctx context.Context, name string, actual []byte) {
	path := a.env.UnexpectedPath(name)

	if err := atomicWrite(path, actual); err != nil {
		a.log(ctx).Log(ctx, log.LevelWarn, "failed to save unexpected actual content",
			log.String("resource", name), log.String("path", path), log.Err(err))

		return
	}

	a.log(ctx).Log(ctx, log.LevelInfo, "unexpected actual content saved",
		log.String("path", path))
}

// fail assembles the terminal mismatch failure. The full report (paths,
// diff, copy-pasteable commands) goes to the assertion log; the returned
// error carries the abbreviated message plus the same commands.
func (a *Asserter) fail(ctx context.Context, name, testID string, cmpErr error) error {
	sourcePath := a.env.SourcePath(name)
	targetPath := a.env.TargetPath(name)

	report := a.formatReport(name, testID, cmpErr)

	if !a.quiet {
		a.log(ctx).Log(ctx, log.LevelError, "expected resource mismatch",
			log.String("resource", name), log.String("test", testID),
			log.String("cause", testcommons.FirstLine(cmpErr.Error())))
		a.appendReport(ctx, report)
	}

	a.annotateSpan(ctx, name, testID)

	message := testcommons.HeadLines(report, abbreviatedReportLines)
	if !strings.Contains(message, "go test -run") {
		// Keep the next action obvious even in the abbreviated form.
		message += "\n" + a.formatCommands(testID)
	}

	return &MismatchError{
		Resource:   name,
		TestID:     testID,
		SourcePath: sourcePath,
		TargetPath: targetPath,
		Message:    message,
		Report:     report,
	}
}

func (a *Asserter) formatReport(name, testID string, cmpErr error) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "expected resource mismatch: %s\n", name)
	fmt.Fprintf(&sb, "test:     %s\n", testID)
	fmt.Fprintf(&sb, "expected: %s\n", a.env.SourcePath(name))
	fmt.Fprintf(&sb, "actual:   %s\n", a.env.UnexpectedPath(name))
	sb.WriteString(cmpErr.Error())

	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}

	sb.WriteString(a.formatCommands(testID))

	return sb.String()
}

// formatCommands renders the literally copy-pasteable commands to re-run
// the failing test and to accept the new output as the expected baseline.
func (a *Asserter) formatCommands(testID string) string {
	run := testRunPattern(testID)

	return fmt.Sprintf("to re-run:  go test -run '%s' ./...\nto accept:  %s='%s' go test -run '%s' ./...",
		run, EnvUpdate, testID, run)
}

// testRunPattern extracts the -run argument from a slash-qualified test ID
// ("pkg/path/TestName" -> "TestName").
func testRunPattern(testID string) string {
	if idx := strings.LastIndexByte(testID, '/'); idx >= 0 && strings.HasPrefix(testID[idx+1:], "Test") {
		return testID[idx+1:]
	}

	return testID
}

// appendReport writes the full report to the dedicated assertion log file.
// Best-effort; the report is already in the returned error.
func (a *Asserter) appendReport(ctx context.Context, report string) {
	path := a.env.ReportPath
	if path == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.log(ctx).Log(ctx, log.LevelWarn, "cannot create assertion log directory", log.Err(err))

		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		a.log(ctx).Log(ctx, log.LevelWarn, "cannot open assertion log", log.String("path", path), log.Err(err))

		return
	}
	defer f.Close()

	if _, err := io.WriteString(f, report+"\n"); err != nil {
		a.log(ctx).Log(ctx, log.LevelWarn, "cannot append to assertion log", log.String("path", path), log.Err(err))
	}
}

// annotateSpan marks an active OpenTelemetry span so traced test runs show
// the mismatch without digging through logs.
func (a *Asserter) annotateSpan(ctx context.Context, name, testID string) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	span.AddEvent("golden.mismatch", trace.WithAttributes(
		attribute.String("golden.resource", name),
		attribute.String("golden.test_id", testID),
	))
	span.SetStatus(codes.Error, "expected resource mismatch")
}

// currentTestID resolves the test identity: explicit ID, then bound
// testing.TB, then the stack resolver.
func (a *Asserter) currentTestID() string {
	if a.testID != "" {
		return a.testID
	}

	if a.tb != nil {
		return a.tb.Name()
	}

	if a.resolver != nil {
		if id, ok := a.resolver.CurrentTestID(); ok {
			return id
		}
	}

	return "unknown"
}

// atomicWrite creates parent directories and writes content through a
// uniquely named temp file renamed into place, so concurrent readers never
// observe a half-written resource.
func atomicWrite(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)

		return err
	}

	return nil
}

// copyFile copies src to dst, creating dst's parent directories.
func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return atomicWrite(dst, content)
}
