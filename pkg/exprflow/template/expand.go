// Package template expands ${...} placeholders in strings, where each
// placeholder body is a full engine expression evaluated against a scope.
//
// "Hello ${upper(name)}" with scope {"name": "world"} expands to
// "Hello WORLD".
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/randalmurphal/exprflow/pkg/exprflow"
	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/registry"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// bracePattern matches ${body} placeholders. Bodies cannot contain braces,
// which keeps the scanner regular; formula expressions never need them.
var bracePattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

// Expander expands expression placeholders in strings.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	missingAction MissingAction
	registry      *registry.Registry
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
//   - Registry: the engine default registry
//
// Example:
//
//	exp := template.NewExpander(
//	    template.WithMissingAction(template.MissingError),
//	)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missingAction: MissingKeep,
		registry:      registry.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand evaluates every ${expr} placeholder in s against the scope.
//
// A placeholder that references a missing variable is handled per the
// expander's MissingAction. Any other failure — a syntax error in the
// body, a type error, an unknown function — is returned immediately.
//
// Example:
//
//	exp := template.NewExpander()
//	result, err := exp.Expand("total: ${price * qty}", scope)
func (e *Expander) Expand(s string, scope value.Value) (string, error) {
	if s == "" {
		return "", nil
	}

	var missingVars []string
	var evalErr error

	result := bracePattern.ReplaceAllStringFunc(s, func(match string) string {
		if evalErr != nil {
			return match
		}
		// Extract the expression body from ${body}.
		body := match[2 : len(match)-1]
		v, err := exprflow.Eval(body, scope, exprflow.WithRegistry(e.registry))
		if err == nil {
			return v.String()
		}
		if name, ok := missingVariable(err); ok {
			switch e.missingAction {
			case MissingEmpty:
				return ""
			case MissingError:
				missingVars = append(missingVars, name)
				return match // Keep for now, will return error.
			default: // MissingKeep
				return match
			}
		}
		evalErr = err
		return match
	})

	if evalErr != nil {
		return "", evalErr
	}
	if len(missingVars) > 0 {
		return result, &UndefinedVariableError{Names: missingVars}
	}
	return result, nil
}

// MustExpand expands placeholders in s and panics on error.
//
// Use this when you're certain all variables are present or when using
// MissingKeep/MissingEmpty with well-formed placeholder bodies.
func (e *Expander) MustExpand(s string, scope value.Value) string {
	result, err := e.Expand(s, scope)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// ExpandAll expands placeholders in all strings.
//
// Returns a new slice with expanded strings.
// On error, returns nil and the first error.
func (e *Expander) ExpandAll(ss []string, scope value.Value) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, scope)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// missingVariable reports whether err is a missing-variable runtime error
// and extracts the variable name.
func missingVariable(err error) (string, bool) {
	ee, ok := xerr.As(err)
	if !ok || ee.Kind != xerr.KindRuntime {
		return "", false
	}
	const prefix = "variable not found: "
	if !strings.HasPrefix(ee.Message, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ee.Message, prefix), true
}

// UndefinedVariableError is returned when MissingError is set and one or
// more placeholder variables are not found.
type UndefinedVariableError struct {
	// Names is the list of undefined variable names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Expand expands placeholders in s using the default expander.
//
// Uses MissingKeep behavior (placeholders with missing variables stay
// as-is); other evaluation failures also leave the placeholder in place.
//
// Example:
//
//	result := template.Expand("Hello ${name}", scope)
func Expand(s string, scope value.Value) string {
	result, err := defaultExpander.Expand(s, scope)
	if err != nil {
		return s
	}
	return result
}

// ExpandAll expands placeholders in all strings using the default
// expander, with MissingKeep behavior.
func ExpandAll(ss []string, scope value.Value) []string {
	results, err := defaultExpander.ExpandAll(ss, scope)
	if err != nil {
		return ss
	}
	return results
}
