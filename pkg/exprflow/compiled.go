package exprflow

import "github.com/randalmurphal/exprflow/pkg/exprflow/value"

// Value is the dynamic value type exchanged with the engine, aliased from
// the value subpackage so façade callers rarely need a second import.
type Value = value.Value

// CompiledExpr is an immutable, executable expression.
// It is created by Compile() and holds the fully resolved closure tree:
// every function name is bound and every fixed arity validated, so Apply
// can only fail with runtime errors.
//
// CompiledExpr is safe for concurrent use: it keeps no state between
// invocations, and a single artifact may be applied from many goroutines
// against distinct scopes simultaneously.
type CompiledExpr struct {
	source     string
	registryID string
	root       evalFn
}

// Source returns the expression text the artifact was compiled from.
func (ce *CompiledExpr) Source() string {
	return ce.source
}

// RegistryID returns the id of the registry the artifact was compiled
// against. The default registry's id is the empty string.
func (ce *CompiledExpr) RegistryID() string {
	return ce.registryID
}

// Apply evaluates the expression against a scope.
//
// The scope is a Value of kind Map or Struct; variables resolve against
// its keys. The scope is treated read-only and may be shared across
// concurrent Apply calls.
func (ce *CompiledExpr) Apply(scope value.Value) (value.Value, error) {
	return ce.root(scope)
}

// MustApply is Apply, panicking on error.
func (ce *CompiledExpr) MustApply(scope value.Value) value.Value {
	v, err := ce.root(scope)
	if err != nil {
		panic(err)
	}
	return v
}
