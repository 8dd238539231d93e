// Package testcommons provides shared testing-support helpers used across
// the pdfClown project family.
//
// The package includes context logger injection and small string utilities
// consumed by the golden and paramtest subpackages.
//
// Typical usage at the top of a test helper:
//
//	ctx = testcommons.ContextWithLogger(ctx, logger)
//	...
//	logger := testcommons.LoggerFromContext(ctx)
//
// This package is intentionally dependency-light; specialized helpers live
// in subpackages such as golden, paramtest, logcapture, and zap.
package testcommons
