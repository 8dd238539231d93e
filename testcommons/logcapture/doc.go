// Package logcapture buffers structured log events emitted during a test
// so the test can assert on what was (or was not) logged.
//
// A Captor implements log.Logger directly and can also be mounted as an
// extra zapcore.Core, letting suites capture events from an existing zap
// pipeline without rewiring their logging.
package logcapture
