package logcapture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pdfclown/lib-testcommons/testcommons/log"
	"github.com/pdfclown/lib-testcommons/testcommons/safe"
)

// Event is one captured log record.
type Event struct {
	Time    time.Time
	Level   log.Level
	Message string
	Fields  []log.Field
}

// Field returns the value of the named field and whether it was present.
func (e Event) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Captor buffers log events for later assertion. It implements log.Logger.
//
// A Captor is safe for concurrent use; parallel subtests sharing one captor
// will interleave events but never corrupt the buffer.
type Captor struct {
	mu     sync.RWMutex
	events []Event
	fields []log.Field
}

// Compile-time assertion: *Captor implements log.Logger.
var _ log.Logger = (*Captor)(nil)

// New creates a Captor and registers a cleanup resetting it when the test
// finishes, so captured events never leak across test boundaries.
func New(tb testing.TB) *Captor {
	tb.Helper()

	captor := &Captor{}
	tb.Cleanup(captor.Reset)

	return captor
}

// Log buffers the event.
func (c *Captor) Log(_ context.Context, level log.Level, msg string, fields ...log.Field) {
	event := Event{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
	}
	event.Fields = append(event.Fields, c.fields...)
	event.Fields = append(event.Fields, fields...)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)
}

// With returns a child captor sharing this captor's buffer, with additional
// persistent fields attached to every event it logs.
//
//nolint:ireturn
func (c *Captor) With(fields ...log.Field) log.Logger {
	child := &childCaptor{parent: c}
	child.fields = append(child.fields, c.fields...)
	child.fields = append(child.fields, fields...)

	return child
}

// Enabled always returns true; a captor never drops events.
func (c *Captor) Enabled(_ log.Level) bool { return true }

// Sync is a no-op and always returns nil.
func (c *Captor) Sync(_ context.Context) error { return nil }

// Reset discards all captured events.
func (c *Captor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = nil
}

// Events returns a snapshot of the captured events in arrival order.
func (c *Captor) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]Event(nil), c.events...)
}

// childCaptor forwards into the parent buffer with extra persistent fields.
type childCaptor struct {
	parent *Captor
	fields []log.Field
}

func (c *childCaptor) Log(ctx context.Context, level log.Level, msg string, fields ...log.Field) {
	merged := append(append([]log.Field(nil), c.fields...), fields...)
	c.parent.Log(ctx, level, msg, merged...)
}

//nolint:ireturn
func (c *childCaptor) With(fields ...log.Field) log.Logger {
	child := &childCaptor{parent: c.parent}
	child.fields = append(child.fields, c.fields...)
	child.fields = append(child.fields, fields...)

	return child
}

func (c *childCaptor) Enabled(_ log.Level) bool     { return true }
func (c *childCaptor) Sync(_ context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Assertions
// ---------------------------------------------------------------------------

// AnyLevel disables level filtering in AssertLogged and AssertNotLogged.
const AnyLevel = log.Level(255)

// match reports whether the event satisfies the level and message filters.
// A nil compiled pattern matches every message.
func (e Event) match(level log.Level, pattern string) (bool, error) {
	if level != AnyLevel && e.Level != level {
		return false, nil
	}

	if pattern == "" {
		return true, nil
	}

	return safe.MatchString(pattern, e.Message)
}

// AssertLogged fails the test unless at least one captured event has the
// given level (use AnyLevel to skip) and a message matching pattern (empty
// to skip). The first matching event is returned.
func (c *Captor) AssertLogged(tb testing.TB, level log.Level, pattern string) Event {
	tb.Helper()

	for _, event := range c.Events() {
		ok, err := event.match(level, pattern)
		if err != nil {
			tb.Fatalf("logcapture: bad message pattern %q: %v", pattern, err)
		}

		if ok {
			return event
		}
	}

	tb.Fatalf("logcapture: no event logged with level=%v message~=%q (captured %d events)",
		level, pattern, len(c.Events()))

	return Event{}
}

// AssertNotLogged fails the test if any captured event has the given level
// (use AnyLevel to skip) and a message matching pattern (empty to skip).
func (c *Captor) AssertNotLogged(tb testing.TB, level log.Level, pattern string) {
	tb.Helper()

	for _, event := range c.Events() {
		ok, err := event.match(level, pattern)
		if err != nil {
			tb.Fatalf("logcapture: bad message pattern %q: %v", pattern, err)
		}

		if ok {
			tb.Fatalf("logcapture: unexpected event logged: level=%v message=%q", event.Level, event.Message)
		}
	}
}
