// Package zap provides the zap-backed implementation of the log.Logger
// interface used by lib-testcommons.
//
// Test suites that already run on zap can hand their logger to the golden
// and paramtest helpers through this adapter; everyone else gets a sane
// console logger from New.
package zap
