package exprflow

import (
	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/ir"
	"github.com/randalmurphal/exprflow/pkg/exprflow/registry"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// compiledStep is one lowered path step of a spread tail: a string key, or
// an index expression evaluated against the outer scope.
type compiledStep struct {
	key string
	idx evalFn
}

// lowerSpread compiles target[*].path spreads. The target must evaluate to
// a List; each element is walked through the tail with forgiving
// semantics: a missing key, a bad index, or a non-container element yields
// Null for that element rather than an error, so aggregates over ragged
// data stay usable. The result always has one entry per element; with
// Flatten set, list results are concatenated one level.
func lowerSpread(n *ir.Spread, reg *registry.Registry) (evalFn, error) {
	target, err := lower(n.Target, reg)
	if err != nil {
		return nil, err
	}
	steps := make([]compiledStep, len(n.Tail))
	for i, st := range n.Tail {
		if st.Index != nil {
			fn, err := lower(st.Index, reg)
			if err != nil {
				return nil, err
			}
			steps[i] = compiledStep{idx: fn}
			continue
		}
		steps[i] = compiledStep{key: st.Key}
	}
	flatten := n.Flatten
	return func(scope value.Value) (value.Value, error) {
		tv, err := target(scope)
		if err != nil {
			return value.Null(), err
		}
		if tv.Kind() != value.KindList {
			return value.Null(), xerr.Runtimef("spread target must be a List, got %s", tv.Kind())
		}
		elems := tv.List()
		out := make([]value.Value, 0, len(elems))
		for _, elem := range elems {
			cur := elem
			for _, st := range steps {
				cur, err = applyStep(cur, st, scope)
				if err != nil {
					return value.Null(), err
				}
			}
			out = append(out, cur)
		}
		if flatten {
			return value.List(flattenOnce(out)...), nil
		}
		return value.List(out...), nil
	}, nil
}

// lowerComputedSpread compiles target[*].(body) spreads. The body is
// evaluated once per element with the element bound as the active scope,
// shadowing the outer scope entirely. Body errors are real errors and
// propagate.
func lowerComputedSpread(n *ir.ComputedSpread, reg *registry.Registry) (evalFn, error) {
	target, err := lower(n.Target, reg)
	if err != nil {
		return nil, err
	}
	body, err := lower(n.Body, reg)
	if err != nil {
		return nil, err
	}
	flatten := n.Flatten
	return func(scope value.Value) (value.Value, error) {
		tv, err := target(scope)
		if err != nil {
			return value.Null(), err
		}
		if tv.Kind() != value.KindList {
			return value.Null(), xerr.Runtimef("spread target must be a List, got %s", tv.Kind())
		}
		elems := tv.List()
		out := make([]value.Value, 0, len(elems))
		for _, elem := range elems {
			v, err := body(elem)
			if err != nil {
				return value.Null(), err
			}
			out = append(out, v)
		}
		if flatten {
			return value.List(flattenOnce(out)...), nil
		}
		return value.List(out...), nil
	}, nil
}

// applyStep walks one path step on one element. Index expressions are
// evaluated against the outer scope; the per-element binding exists only
// inside computed spread bodies.
func applyStep(elem value.Value, st compiledStep, scope value.Value) (value.Value, error) {
	if st.idx != nil {
		kv, err := st.idx(scope)
		if err != nil {
			return value.Null(), err
		}
		switch elem.Kind() {
		case value.KindList:
			if kv.Kind() != value.KindInt {
				return value.Null(), nil
			}
			elems := elem.List()
			idx := kv.Int64()
			if idx < 0 || idx >= int64(len(elems)) {
				return value.Null(), nil
			}
			return elems[idx], nil
		case value.KindMap:
			if kv.Kind() != value.KindString {
				return value.Null(), nil
			}
			if v, ok := elem.Map()[kv.Str()]; ok {
				return v, nil
			}
			return value.Null(), nil
		case value.KindStruct:
			if kv.Kind() != value.KindString {
				return value.Null(), nil
			}
			if v, ok := elem.Struct().Lookup(kv.Str()); ok {
				return v, nil
			}
			return value.Null(), nil
		default:
			return value.Null(), nil
		}
	}
	switch elem.Kind() {
	case value.KindMap:
		if v, ok := elem.Map()[st.key]; ok {
			return v, nil
		}
		return value.Null(), nil
	case value.KindStruct:
		if v, ok := elem.Struct().Lookup(st.key); ok {
			return v, nil
		}
		return value.Null(), nil
	default:
		return value.Null(), nil
	}
}

// flattenOnce concatenates one level of list nesting. Non-list entries
// pass through unchanged.
func flattenOnce(in []value.Value) []value.Value {
	out := make([]value.Value, 0, len(in))
	for _, v := range in {
		if v.Kind() == value.KindList {
			out = append(out, v.List()...)
			continue
		}
		out = append(out, v)
	}
	return out
}
