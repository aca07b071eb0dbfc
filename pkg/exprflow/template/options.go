package template

import "github.com/randalmurphal/exprflow/pkg/exprflow/registry"

// MissingAction controls what happens when a placeholder references a
// variable that is not in the scope.
type MissingAction int

const (
	// MissingKeep leaves the placeholder text as-is.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string.
	MissingEmpty

	// MissingError collects the missing variables and returns an error.
	MissingError
)

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets the behavior for placeholders whose expression
// references a missing variable. Default: MissingKeep.
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}

// WithRegistry evaluates placeholder expressions against a custom
// registry. Default: the engine default registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Expander) {
		if reg != nil {
			e.registry = reg
		}
	}
}
