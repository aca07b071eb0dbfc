/*
Package exprflow is an embeddable evaluation engine for spreadsheet-style
formulas over structured runtime data.

# Overview

exprflow compiles textual expressions like "price * qty * (1 + tax)" into
reusable artifacts and evaluates them against a scope: a tree of dynamic
values supplied per call. The same expression is typically evaluated many
times against different scopes, so parsing and semantic resolution are
amortized through a per-registry LRU compilation cache.

The pipeline is strictly left-to-right:

	source ──▶ parser ──▶ IR ──▶ compiler ──▶ CompiledExpr ──▶ Apply(scope)

The engine executes no host code: there is no I/O, no assignment, no
iteration. Control flow is limited to the conditional operator and
short-circuit booleans; list processing goes through the spread operator.

# Basic Usage

	scope := value.MustFromAny(map[string]any{
	    "price":    25.0,
	    "quantity": 4,
	    "tax_rate": 0.08,
	})

	v, err := exprflow.Eval("price * quantity * (1 + tax_rate)", scope)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(v) // 108

For repeated evaluation, compile once and apply many times:

	ce, err := exprflow.Compile("user.scores[1] + 5")
	if err != nil {
	    log.Fatal(err)
	}
	v, err := ce.Apply(scope) // safe from any number of goroutines

# Spreads

The spread marker [*] maps the rest of an accessor chain over a list, and
.(expr) evaluates a body per element with the element as scope:

	sum(orders[*].(qty * price))

walks every order, multiplies its qty and price fields, and sums the
resulting list. A second [*] concatenates nested results one level.

# Custom Functions

Expressions call functions resolved against a registry at compile time;
scope values are never callable. The default registry carries the built-in
math, string, and utility library. Callers extend or override it with
plugins:

	double := registry.NewFunc("double", registry.Fixed(1),
	    func(args []value.Value) (value.Value, error) {
	        f, _ := args[0].AsFloat()
	        return value.Float(f * 2), nil
	    })

	reg := registry.New(registry.WithPlugins(double))
	v, err := exprflow.Eval("double(21)", scope, exprflow.WithRegistry(reg))

Unknown functions and wrong argument counts for fixed-arity functions are
compile-time errors.

# Error Handling

Every failure is a structured *Error classified by the stage that caught
it: parser errors carry a line and column, compiler errors name the
offending function, runtime errors describe the failing operation.

	_, err := exprflow.Eval("1 +", scope)
	var ee *exprflow.Error
	if errors.As(err, &ee) {
	    fmt.Println(ee.Kind, ee.Line, ee.Column)
	}

# Observability

Logging, metrics, and tracing are opt-in per call:

	v, err := exprflow.Eval(src, scope,
	    exprflow.WithLogger(logger),
	    exprflow.WithMetrics(true),
	    exprflow.WithTracing(true))

OpenTelemetry metrics: exprflow.compile.count, exprflow.compile.latency_ms,
exprflow.eval.count, exprflow.eval.latency_ms, exprflow.cache.evictions.
Spans: exprflow.compile and exprflow.eval.

# Thread Safety

  - CompiledExpr IS safe for concurrent use (immutable)
  - Registry IS safe for concurrent use after construction
  - The compilation cache serves concurrent readers without blocking
  - Scope values are treated read-only by the engine

# Subpackages

  - value: the dynamic value model and scope builders
  - parser: expression grammar and IR construction
  - registry: function registry and the built-in library
  - catalog: named-expression storage (memory, SQLite)
  - template: ${expr} string interpolation
  - observability: logging, metrics, and tracing helpers
*/
package exprflow
