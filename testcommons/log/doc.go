// Package log defines the structured logging interface and typed fields
// used throughout lib-testcommons.
//
// Adapters (such as the zap package) implement Logger so assertion helpers
// can log through whatever backend the host test suite already uses.
package log
