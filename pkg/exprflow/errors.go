package exprflow

import xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"

// Error is the structured error returned by every engine entry point.
// Aliased from the errors subpackage so callers of the façade rarely need
// a second import.
type Error = xerr.Error

// ErrorKind classifies an Error by the stage that detected it.
type ErrorKind = xerr.Kind

// Error kinds, re-exported for façade callers.
const (
	// ErrParser marks malformed syntax; carries line and column.
	ErrParser = xerr.KindParser

	// ErrCompiler marks unknown functions, arity mismatches, and other
	// compile-time semantic failures.
	ErrCompiler = xerr.KindCompiler

	// ErrRuntime marks failures during evaluation against a scope.
	ErrRuntime = xerr.KindRuntime
)

// AsError extracts an engine *Error from err, unwrapping as needed.
func AsError(err error) (*Error, bool) {
	return xerr.As(err)
}

// IsParseError reports whether err is a parser error.
func IsParseError(err error) bool {
	return xerr.IsKind(err, xerr.KindParser)
}

// IsCompileError reports whether err is a compile-time error.
func IsCompileError(err error) bool {
	return xerr.IsKind(err, xerr.KindCompiler)
}

// IsRuntimeError reports whether err is a runtime error.
func IsRuntimeError(err error) bool {
	return xerr.IsKind(err, xerr.KindRuntime)
}
