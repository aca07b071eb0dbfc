package exprflow

import (
	"fmt"

	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/ir"
	"github.com/randalmurphal/exprflow/pkg/exprflow/registry"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// maxFactorial is the largest n with n! representable in an int64.
const maxFactorial = 20

// evalFn is a compiled node: it evaluates against the active scope.
// Compiled closures capture only immutable data, so a compiled tree is
// reentrant and safe for concurrent use.
type evalFn func(scope value.Value) (value.Value, error)

// lower compiles an IR node against a registry. Function resolution and
// fixed-arity validation happen here; everything left for evaluation is a
// pure closure over the resolved pieces.
func lower(node ir.Node, reg *registry.Registry) (evalFn, error) {
	switch n := node.(type) {
	case *ir.Literal:
		val := n.Val
		return func(value.Value) (value.Value, error) {
			return val, nil
		}, nil

	case *ir.GetVar:
		name := n.Name
		return func(scope value.Value) (value.Value, error) {
			if v, ok := lookupVar(scope, name); ok {
				return v, nil
			}
			return value.Null(), xerr.Runtimef("variable not found: %s", name)
		}, nil

	case *ir.Access:
		return lowerAccess(n, reg)

	case *ir.Call:
		return lowerCall(n, reg)

	case *ir.Unary:
		return lowerUnary(n, reg)

	case *ir.Binary:
		return lowerBinary(n, reg)

	case *ir.Factorial:
		operand, err := lower(n.Operand, reg)
		if err != nil {
			return nil, err
		}
		return func(scope value.Value) (value.Value, error) {
			v, err := operand(scope)
			if err != nil {
				return value.Null(), err
			}
			if v.Kind() != value.KindInt {
				return value.Null(), xerr.Runtimef("factorial requires an Int, got %s", v.Kind())
			}
			n := v.Int64()
			if n < 0 {
				return value.Null(), xerr.Runtimef("factorial of negative number %d", n)
			}
			if n > maxFactorial {
				return value.Null(), xerr.Runtimef("factorial of %d overflows", n)
			}
			out := int64(1)
			for i := int64(2); i <= n; i++ {
				out *= i
			}
			return value.Int(out), nil
		}, nil

	case *ir.Ternary:
		cond, err := lower(n.Cond, reg)
		if err != nil {
			return nil, err
		}
		then, err := lower(n.Then, reg)
		if err != nil {
			return nil, err
		}
		els, err := lower(n.Else, reg)
		if err != nil {
			return nil, err
		}
		return func(scope value.Value) (value.Value, error) {
			c, err := cond(scope)
			if err != nil {
				return value.Null(), err
			}
			if c.Truthy() {
				return then(scope)
			}
			return els(scope)
		}, nil

	case *ir.Spread:
		return lowerSpread(n, reg)

	case *ir.ComputedSpread:
		return lowerComputedSpread(n, reg)

	default:
		return nil, xerr.Compilef("unsupported IR node %T", node)
	}
}

// lookupVar resolves a variable name against the active scope: string-keyed
// map lookup first, then the struct's existing interned keys. Struct
// resolution never mints new symbols.
func lookupVar(scope value.Value, name string) (value.Value, bool) {
	switch scope.Kind() {
	case value.KindMap:
		v, ok := scope.Map()[name]
		return v, ok
	case value.KindStruct:
		return scope.Struct().Lookup(name)
	default:
		return value.Value{}, false
	}
}

// lowerAccess compiles dot and bracket access. Misses surface as the
// distinguished not-found condition, which can never be confused with a
// user value that happens to look like a marker.
func lowerAccess(n *ir.Access, reg *registry.Registry) (evalFn, error) {
	target, err := lower(n.Target, reg)
	if err != nil {
		return nil, err
	}
	key, err := lower(n.Key, reg)
	if err != nil {
		return nil, err
	}
	return func(scope value.Value) (value.Value, error) {
		tv, err := target(scope)
		if err != nil {
			return value.Null(), err
		}
		kv, err := key(scope)
		if err != nil {
			return value.Null(), err
		}
		switch tv.Kind() {
		case value.KindList:
			if kv.Kind() != value.KindInt {
				return value.Null(), xerr.Runtimef("list index must be an Int, got %s", kv.Kind())
			}
			elems := tv.List()
			idx := kv.Int64()
			if idx < 0 || idx >= int64(len(elems)) {
				return value.Null(), xerr.Runtimef("index %d out of range (list length %d)", idx, len(elems))
			}
			return elems[idx], nil
		case value.KindMap:
			if kv.Kind() != value.KindString {
				return value.Null(), xerr.Runtimef("map key must be a String, got %s", kv.Kind())
			}
			if v, ok := tv.Map()[kv.Str()]; ok {
				return v, nil
			}
			return value.Null(), xerr.Runtimef("Access failed: key not found")
		case value.KindStruct:
			if kv.Kind() != value.KindString {
				return value.Null(), xerr.Runtimef("struct key must be a String, got %s", kv.Kind())
			}
			if v, ok := tv.Struct().Lookup(kv.Str()); ok {
				return v, nil
			}
			return value.Null(), xerr.Runtimef("Access failed: key not found")
		default:
			return value.Null(), xerr.Runtimef("cannot access %s on %s", kv, tv.Kind())
		}
	}, nil
}

// lowerCall resolves the function now and validates fixed arities, so an
// unknown name or a wrong argument count never reaches evaluation.
func lowerCall(n *ir.Call, reg *registry.Registry) (evalFn, error) {
	impl, ok := reg.Resolve(n.Name)
	if !ok {
		return nil, xerr.Compilef("unknown function: %s", n.Name)
	}
	if arity := impl.Arity(); !arity.IsVariadic() && arity.Count() != len(n.Args) {
		return nil, xerr.Compilef("function %q expects %s, got %d", n.Name, arity, len(n.Args))
	}
	argFns := make([]evalFn, len(n.Args))
	for i, arg := range n.Args {
		fn, err := lower(arg, reg)
		if err != nil {
			return nil, err
		}
		argFns[i] = fn
	}
	name := n.Name
	return func(scope value.Value) (value.Value, error) {
		args := make([]value.Value, len(argFns))
		for i, fn := range argFns {
			v, err := fn(scope)
			if err != nil {
				return value.Null(), err
			}
			args[i] = v
		}
		out, err := impl.Invoke(args)
		if err != nil {
			if _, ok := err.(*xerr.Error); ok {
				return value.Null(), err
			}
			return value.Null(), &xerr.Error{
				Kind:    xerr.KindRuntime,
				Message: fmt.Sprintf("function %q failed: %s", name, err),
				Details: err,
			}
		}
		return out, nil
	}, nil
}

func lowerUnary(n *ir.Unary, reg *registry.Registry) (evalFn, error) {
	operand, err := lower(n.Operand, reg)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ir.OpNeg:
		return func(scope value.Value) (value.Value, error) {
			v, err := operand(scope)
			if err != nil {
				return value.Null(), err
			}
			switch v.Kind() {
			case value.KindInt:
				return value.Int(-v.Int64()), nil
			case value.KindFloat:
				return value.Float(-v.Float64()), nil
			default:
				return value.Null(), xerr.Runtimef("cannot negate %s", v.Kind())
			}
		}, nil
	case ir.OpNot:
		return func(scope value.Value) (value.Value, error) {
			v, err := operand(scope)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(!v.Truthy()), nil
		}, nil
	case ir.OpBitNot:
		return func(scope value.Value) (value.Value, error) {
			v, err := operand(scope)
			if err != nil {
				return value.Null(), err
			}
			if v.Kind() != value.KindInt {
				return value.Null(), xerr.Runtimef("bitwise complement requires an Int, got %s", v.Kind())
			}
			return value.Int(^v.Int64()), nil
		}, nil
	default:
		return nil, xerr.Compilef("unsupported unary operator %s", n.Op)
	}
}

func lowerBinary(n *ir.Binary, reg *registry.Registry) (evalFn, error) {
	left, err := lower(n.Left, reg)
	if err != nil {
		return nil, err
	}
	right, err := lower(n.Right, reg)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ir.OpAnd:
		return func(scope value.Value) (value.Value, error) {
			l, err := left(scope)
			if err != nil {
				return value.Null(), err
			}
			if !l.Truthy() {
				return value.Bool(false), nil
			}
			r, err := right(scope)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(r.Truthy()), nil
		}, nil
	case ir.OpOr:
		return func(scope value.Value) (value.Value, error) {
			l, err := left(scope)
			if err != nil {
				return value.Null(), err
			}
			if l.Truthy() {
				return value.Bool(true), nil
			}
			r, err := right(scope)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(r.Truthy()), nil
		}, nil
	case ir.OpEq:
		return func(scope value.Value) (value.Value, error) {
			l, r, err := evalPair(left, right, scope)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(value.Equal(l, r)), nil
		}, nil
	case ir.OpNe:
		return func(scope value.Value) (value.Value, error) {
			l, r, err := evalPair(left, right, scope)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(!value.Equal(l, r)), nil
		}, nil
	case ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		op := n.Op
		return func(scope value.Value) (value.Value, error) {
			l, r, err := evalPair(left, right, scope)
			if err != nil {
				return value.Null(), err
			}
			c, cerr := value.Compare(l, r)
			if cerr != nil {
				return value.Null(), xerr.Runtimef("%s", cerr)
			}
			switch op {
			case ir.OpLt:
				return value.Bool(c < 0), nil
			case ir.OpLe:
				return value.Bool(c <= 0), nil
			case ir.OpGt:
				return value.Bool(c > 0), nil
			default:
				return value.Bool(c >= 0), nil
			}
		}, nil
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod, ir.OpPow:
		return lowerArithmetic(n.Op, left, right), nil
	case ir.OpBitAnd, ir.OpBitOr, ir.OpBitXor, ir.OpShl, ir.OpShr:
		return lowerBitwise(n.Op, left, right), nil
	default:
		return nil, xerr.Compilef("unsupported binary operator %s", n.Op)
	}
}

// evalPair evaluates both operands, propagating the first error.
func evalPair(left, right evalFn, scope value.Value) (value.Value, value.Value, error) {
	l, err := left(scope)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	r, err := right(scope)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return l, r, nil
}
