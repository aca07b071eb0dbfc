// Package registry defines the function registry: the frozen table of
// named functions an expression may call.
//
// A registry is built once from the engine defaults plus caller plugins
// (plugins override defaults by name) and is immutable afterwards, so it
// can be shared freely across goroutines. Function identity is fixed at
// compile time: scope values are never callable.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/exprflow/pkg/exprflow/config"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// DefaultCacheLimit is the per-registry compilation cache limit used when
// none is configured.
const DefaultCacheLimit = 1000

// Arity describes how many arguments a function accepts.
type Arity struct {
	n        int
	variadic bool
}

// Fixed returns an arity of exactly n arguments, validated at compile time.
func Fixed(n int) Arity {
	return Arity{n: n}
}

// Any returns an arity accepting any number of arguments. Count validation,
// if any, happens inside the function at invoke time.
func Any() Arity {
	return Arity{variadic: true}
}

// IsVariadic reports whether the arity accepts any argument count.
func (a Arity) IsVariadic() bool {
	return a.variadic
}

// Count returns the fixed argument count. Meaningless for variadic arities.
func (a Arity) Count() int {
	return a.n
}

// String describes the arity for error messages.
func (a Arity) String() string {
	if a.variadic {
		return "any number of arguments"
	}
	if a.n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", a.n)
}

// FunctionImpl is a function callable from expressions.
//
// Invoke receives the evaluated arguments and returns a result or an
// error. Returning an engine *errors.Error propagates it unchanged; any
// other error is wrapped as a runtime error naming the function.
type FunctionImpl interface {
	// Name is the identifier used in expressions.
	Name() string

	// Arity is validated at compile time when fixed.
	Arity() Arity

	// Invoke evaluates the function.
	Invoke(args []value.Value) (value.Value, error)
}

// Func is a FunctionImpl built from a plain Go function.
type Func struct {
	name  string
	arity Arity
	fn    func(args []value.Value) (value.Value, error)
}

// NewFunc wraps a Go function as a FunctionImpl.
func NewFunc(name string, arity Arity, fn func(args []value.Value) (value.Value, error)) *Func {
	if name == "" {
		panic("registry: function name cannot be empty")
	}
	if fn == nil {
		panic("registry: function body cannot be nil")
	}
	return &Func{name: name, arity: arity, fn: fn}
}

// Name implements FunctionImpl.
func (f *Func) Name() string { return f.name }

// Arity implements FunctionImpl.
func (f *Func) Arity() Arity { return f.arity }

// Invoke implements FunctionImpl.
func (f *Func) Invoke(args []value.Value) (value.Value, error) {
	return f.fn(args)
}

// Registry is a frozen name → function table with its cache settings.
type Registry struct {
	id           string
	funcs        map[string]FunctionImpl
	cacheEnabled bool
	cacheLimit   int
}

// Option configures a Registry under construction.
type Option func(*Registry)

// WithPlugins adds caller functions to the registry. A plugin whose name
// matches a default (or an earlier plugin) replaces it: last writer wins.
func WithPlugins(fns ...FunctionImpl) Option {
	return func(r *Registry) {
		for _, fn := range fns {
			r.funcs[fn.Name()] = fn
		}
	}
}

// WithCacheEnabled toggles the compilation cache for this registry.
// Default: enabled.
func WithCacheEnabled(enabled bool) Option {
	return func(r *Registry) {
		r.cacheEnabled = enabled
	}
}

// WithCacheLimit sets the maximum number of cached compiled expressions
// for this registry. Non-positive values are ignored. Default: 1000.
func WithCacheLimit(limit int) Option {
	return func(r *Registry) {
		if limit > 0 {
			r.cacheLimit = limit
		}
	}
}

// New creates a registry from the engine defaults plus the given options.
// Each registry gets a unique stable id used as its cache key space.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:           uuid.NewString(),
		funcs:        defaultFunctions(),
		cacheEnabled: true,
		cacheLimit:   DefaultCacheLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig creates a registry with cache settings read from cfg
// ("cache_enabled", "cache_limit") plus any plugins.
func FromConfig(cfg config.Config, plugins ...FunctionImpl) *Registry {
	return New(
		WithCacheEnabled(cfg.Bool("cache_enabled", true)),
		WithCacheLimit(cfg.Int("cache_limit", DefaultCacheLimit)),
		WithPlugins(plugins...),
	)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared default registry: engine defaults only, cache
// enabled with the default limit. Its id is the empty sentinel.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = &Registry{
			id:           "",
			funcs:        defaultFunctions(),
			cacheEnabled: true,
			cacheLimit:   DefaultCacheLimit,
		}
	})
	return defaultRegistry
}

// ID returns the registry's stable identifier. The default registry's id
// is the empty string.
func (r *Registry) ID() string {
	return r.id
}

// Resolve returns the function registered under name.
func (r *Registry) Resolve(name string) (FunctionImpl, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names returns all registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CacheEnabled reports whether compiled expressions for this registry are
// cached.
func (r *Registry) CacheEnabled() bool {
	return r.cacheEnabled
}

// CacheLimit returns the registry's compilation cache limit.
func (r *Registry) CacheLimit() int {
	return r.cacheLimit
}
