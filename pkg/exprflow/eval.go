package exprflow

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/exprflow/pkg/exprflow/cache"
	"github.com/randalmurphal/exprflow/pkg/exprflow/observability"
	"github.com/randalmurphal/exprflow/pkg/exprflow/parser"
	"github.com/randalmurphal/exprflow/pkg/exprflow/registry"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// The process-wide compilation cache. The table is created lazily on the
// first compile that wants caching; StopCache tears it down. A put against
// a stopped cache warns once and becomes a no-op: a missing cache never
// affects correctness, it only forfeits amortization.
var (
	cacheTable   atomic.Pointer[cache.LRU[*CompiledExpr]]
	cacheStopped atomic.Bool
	cacheWarned  atomic.Bool
)

// loadCache returns the live cache table, creating it lazily unless the
// cache has been stopped.
func loadCache() *cache.LRU[*CompiledExpr] {
	if t := cacheTable.Load(); t != nil {
		return t
	}
	if cacheStopped.Load() {
		return nil
	}
	cacheTable.CompareAndSwap(nil, cache.New[*CompiledExpr]())
	return cacheTable.Load()
}

// StopCache tears down the compilation cache. Later compilations still
// succeed but are not cached; the first discarded put logs a one-shot
// warning.
func StopCache() {
	cacheStopped.Store(true)
	cacheTable.Store(nil)
	cacheWarned.Store(false)
}

// StartCache re-enables lazy cache creation after StopCache.
func StartCache() {
	cacheStopped.Store(false)
}

// ResetCache drops every cached artifact. Compiled expressions held by
// callers are unaffected.
func ResetCache() {
	if t := cacheTable.Load(); t != nil {
		t.PurgeAll()
	}
}

// CacheLen returns the number of artifacts cached for the registry.
func CacheLen(reg *registry.Registry) int {
	t := cacheTable.Load()
	if t == nil {
		return 0
	}
	return t.Len(reg.ID())
}

// Compile parses and compiles an expression into a reusable artifact.
//
// Compilation is amortized: when the registry's cache is enabled, a second
// Compile of the same text against the same registry is served from the
// cache. Compile errors are never cached, so fixing a registry and
// retrying works.
func Compile(source string, opts ...Option) (*CompiledExpr, error) {
	cfg := newEvalConfig(opts)
	return compile(source, cfg)
}

func compile(source string, cfg evalConfig) (*CompiledExpr, error) {
	ctx := context.Background()
	reg := cfg.registry
	done := observability.TimedOperation()
	start := time.Now()

	if reg.CacheEnabled() {
		if t := loadCache(); t != nil {
			if ce, ok := t.Get(reg.ID(), source); ok {
				cfg.metrics.RecordCompile(ctx, true, time.Since(start), nil)
				observability.LogCompile(cfg.logger, source, done(), true)
				return ce, nil
			}
		}
	}

	ctx, span := cfg.spans.StartCompileSpan(ctx, source)
	ce, err := compileUncached(source, reg)
	cfg.spans.EndSpanWithError(span, err)
	cfg.metrics.RecordCompile(ctx, false, time.Since(start), err)
	if err != nil {
		observability.LogCompileError(cfg.logger, source, err)
		return nil, err
	}
	observability.LogCompile(cfg.logger, source, done(), false)

	if reg.CacheEnabled() {
		t := loadCache()
		if t == nil {
			if cacheWarned.CompareAndSwap(false, true) {
				slog.Warn("expression cache not started; compilation result not cached")
			}
			return ce, nil
		}
		if evicted := t.Put(reg.ID(), source, ce, reg.CacheLimit()); evicted > 0 {
			cfg.metrics.RecordCacheEviction(ctx, evicted)
			observability.LogCacheEviction(cfg.logger, reg.ID(), evicted)
		}
	}
	return ce, nil
}

// compileUncached runs the parser and the compiler with no cache in the
// path.
func compileUncached(source string, reg *registry.Registry) (*CompiledExpr, error) {
	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	root, err := lower(node, reg)
	if err != nil {
		return nil, err
	}
	return &CompiledExpr{
		source:     source,
		registryID: reg.ID(),
		root:       root,
	}, nil
}

// Eval compiles (through the cache) and applies an expression in one call.
//
// Example:
//
//	scope := value.MustFromAny(map[string]any{"price": 25.0, "qty": 4})
//	v, err := exprflow.Eval("price * qty", scope)
func Eval(source string, scope value.Value, opts ...Option) (value.Value, error) {
	cfg := newEvalConfig(opts)
	ce, err := compile(source, cfg)
	if err != nil {
		return value.Null(), err
	}

	ctx := context.Background()
	done := observability.TimedOperation()
	start := time.Now()
	ctx, span := cfg.spans.StartEvalSpan(ctx, source)
	out, err := ce.Apply(scope)
	cfg.spans.EndSpanWithError(span, err)
	cfg.metrics.RecordEval(ctx, time.Since(start), err)
	if err != nil {
		observability.LogEvalError(cfg.logger, source, err)
		return value.Null(), err
	}
	observability.LogEval(cfg.logger, source, done())
	return out, nil
}

// Validate compiles an expression and discards the artifact. It succeeds
// exactly when Compile succeeds; like Compile, successful results populate
// the cache.
func Validate(source string, opts ...Option) error {
	_, err := Compile(source, opts...)
	return err
}

// MustCompile is Compile, panicking on error.
func MustCompile(source string, opts ...Option) *CompiledExpr {
	ce, err := Compile(source, opts...)
	if err != nil {
		panic(err)
	}
	return ce
}

// MustEval is Eval, panicking on error.
func MustEval(source string, scope value.Value, opts ...Option) value.Value {
	v, err := Eval(source, scope, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustValidate is Validate, panicking on error.
func MustValidate(source string, opts ...Option) {
	if err := Validate(source, opts...); err != nil {
		panic(err)
	}
}
