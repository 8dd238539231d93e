package golden

import "errors"

// ErrContentMismatch is the sentinel error for terminal golden-file
// assertion failures.
var ErrContentMismatch = errors.New("expected resource mismatch")

// MismatchError is a terminal content mismatch with full diagnostic context.
//
// Error() returns the abbreviated, console-friendly message; the unabridged
// report (paths, diff, copy-pasteable commands) is carried in Report and is
// also written to the assertion log before the error is returned.
type MismatchError struct {
	Resource   string
	TestID     string
	SourcePath string
	TargetPath string
	Message    string
	Report     string
}

// Error returns the abbreviated mismatch message.
func (e *MismatchError) Error() string {
	if e == nil {
		return ErrContentMismatch.Error()
	}

	return e.Message
}

// Unwrap returns the sentinel mismatch error for errors.Is.
func (e *MismatchError) Unwrap() error {
	return ErrContentMismatch
}

// WriteSourceError reports a failure while writing the source-side expected
// resource. This is fatal: the version-controlled baseline could not be
// produced.
type WriteSourceError struct {
	Path string
	Err  error
}

// Error returns the formatted source-write failure message.
func (e *WriteSourceError) Error() string {
	return "failed to generate expected resource at " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying I/O error.
func (e *WriteSourceError) Unwrap() error { return e.Err }

// CopyTargetError reports a failure while copying the freshly written
// source resource to the build-output target path. The source side is
// already correct, so a full test re-run regenerates the target on its own.
type CopyTargetError struct {
	SourcePath string
	TargetPath string
	Err        error
}

// Error returns the formatted target-copy failure message.
func (e *CopyTargetError) Error() string {
	return "failed to copy expected resource to " + e.TargetPath +
		" (source " + e.SourcePath + " is up to date; re-running the tests should heal this): " +
		e.Err.Error()
}

// Unwrap returns the underlying I/O error.
func (e *CopyTargetError) Unwrap() error { return e.Err }
