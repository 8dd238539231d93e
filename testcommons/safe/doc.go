// Package safe provides panic-free helpers for regex compilation and
// checked integer arithmetic.
//
// Functions that can fail return explicit errors instead of panicking, so
// callers can handle failures predictably inside test tooling that must
// never crash the suite it supports.
package safe
