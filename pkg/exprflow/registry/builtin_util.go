package registry

import (
	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// utilFunctions returns the conditional and lookup built-ins.
//
// These are ordinary functions: their arguments are evaluated before the
// call, so if(cond, t, f) is eager, unlike the ?: operator.
func utilFunctions() []FunctionImpl {
	return []FunctionImpl{
		NewFunc("if", Fixed(3), func(args []value.Value) (value.Value, error) {
			if args[0].Truthy() {
				return args[1], nil
			}
			return args[2], nil
		}),

		NewFunc("ifnull", Fixed(2), func(args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return args[1], nil
			}
			return args[0], nil
		}),

		NewFunc("coalesce", Any(), func(args []value.Value) (value.Value, error) {
			for _, v := range args {
				if !v.IsNull() {
					return v, nil
				}
			}
			return value.Null(), nil
		}),

		// switch(expr, case1, result1, ..., default?). The expression is
		// matched against each case by structural equality; an unpaired
		// trailing argument is the default.
		NewFunc("switch", Any(), func(args []value.Value) (value.Value, error) {
			if len(args) < 1 {
				return value.Null(), xerr.Runtimef("switch: expected at least 1 argument")
			}
			subject := args[0]
			rest := args[1:]
			for len(rest) >= 2 {
				if value.Equal(subject, rest[0]) {
					return rest[1], nil
				}
				rest = rest[2:]
			}
			if len(rest) == 1 {
				return rest[0], nil
			}
			return value.Null(), nil
		}),

		NewFunc("and", Any(), func(args []value.Value) (value.Value, error) {
			for _, v := range args {
				if !v.Truthy() {
					return value.Bool(false), nil
				}
			}
			return value.Bool(true), nil
		}),

		NewFunc("or", Any(), func(args []value.Value) (value.Value, error) {
			for _, v := range args {
				if v.Truthy() {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}),

		// lookup(coll, key[, default]). Misses resolve to the default, or
		// Null when no default is given; lookup never errors on a miss.
		NewFunc("lookup", Any(), func(args []value.Value) (value.Value, error) {
			if err := wantArgs("lookup", args, 2, 3); err != nil {
				return value.Null(), err
			}
			miss := value.Null()
			if len(args) == 3 {
				miss = args[2]
			}
			coll, key := args[0], args[1]
			switch coll.Kind() {
			case value.KindMap:
				if key.Kind() != value.KindString {
					return miss, nil
				}
				if v, ok := coll.Map()[key.Str()]; ok {
					return v, nil
				}
				return miss, nil
			case value.KindStruct:
				if key.Kind() != value.KindString {
					return miss, nil
				}
				if v, ok := coll.Struct().Lookup(key.Str()); ok {
					return v, nil
				}
				return miss, nil
			case value.KindList:
				if key.Kind() != value.KindInt {
					return miss, nil
				}
				elems := coll.List()
				idx := key.Int64()
				if idx < 0 || idx >= int64(len(elems)) {
					return miss, nil
				}
				return elems[idx], nil
			default:
				return value.Null(), xerr.Runtimef("lookup: collection must be Map, Struct or List, got %s", coll.Kind())
			}
		}),
	}
}
