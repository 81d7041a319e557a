// Package ipverrors defines the caller-facing error kinds the validator's
// core packages raise. Only failures a caller must react to before a
// ValidationReport can be produced — a bad path, an unreadable file, an
// archive that cannot be unpacked into a single root — are modeled as
// *Error. Everything a package can still report on (schema failures,
// Schematron rule violations, manifest mismatches) is surfaced as a
// report.TestResult instead and never returned as an error; see
// validate.Run.
package ipverrors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a validator error.
type Kind string

const (
	// KindInput covers a missing path, an unreadable file, or a path
	// that is not a recognised archive format.
	KindInput Kind = "INPUT"
	// KindNotArchive is returned by archive.Unpack when the
	// input does not match any supported archive format.
	KindNotArchive Kind = "NOT_ARCHIVE"
	// KindMultiRoot is returned by archive.Unpack when extraction
	// yields anything other than exactly one directory child.
	KindMultiRoot Kind = "MULTI_ROOT"
	// KindIO covers a file that exists but could not be opened or
	// read to completion.
	KindIO Kind = "IO"
	// KindCancelled is returned when a context is cancelled mid
	// operation.
	KindCancelled Kind = "CANCELLED"
	// KindInternal covers an unexpected failure that could not be
	// attributed to caller input.
	KindInternal Kind = "INTERNAL"
)

// Error is the error type every core package returns. It is always
// caller-actionable: validation-style defects are reported as
// report.TestResult values instead, never as an Error.
type Error struct {
	Kind      Kind
	Message   string
	Operation string
	Path      string
	Cause     error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s [%s] (path: %s)", e.Operation, e.Message, e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Operation, e.Message, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with a literal message.
func New(kind Kind, op, path, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Operation: op, Path: path, Cause: cause}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, op, path string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Operation: op, Path: path, Cause: cause}
}

// Is reports whether err is an *Error of the given Kind, looking through
// any wrapping via errors.As semantics.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
