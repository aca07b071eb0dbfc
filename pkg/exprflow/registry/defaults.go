package registry

import (
	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// defaultFunctions builds a fresh copy of the default function table.
// Each registry gets its own map so plugin overrides never leak between
// registries.
func defaultFunctions() map[string]FunctionImpl {
	groups := [][]FunctionImpl{
		mathFunctions(),
		stringFunctions(),
		utilFunctions(),
	}
	table := make(map[string]FunctionImpl, 64)
	for _, group := range groups {
		for _, fn := range group {
			table[fn.Name()] = fn
		}
	}
	return table
}

// Shared argument helpers for the built-in library.

// argNumber extracts args[i] as a float64, failing with the function name.
func argNumber(name string, args []value.Value, i int) (float64, error) {
	f, ok := args[i].AsFloat()
	if !ok {
		return 0, xerr.Runtimef("%s: argument %d must be a number, got %s", name, i+1, args[i].Kind())
	}
	return f, nil
}

// argInt extracts args[i] as an int64.
func argInt(name string, args []value.Value, i int) (int64, error) {
	if args[i].Kind() != value.KindInt {
		return 0, xerr.Runtimef("%s: argument %d must be an Int, got %s", name, i+1, args[i].Kind())
	}
	return args[i].Int64(), nil
}

// argString extracts args[i] as a string.
func argString(name string, args []value.Value, i int) (string, error) {
	if args[i].Kind() != value.KindString {
		return "", xerr.Runtimef("%s: argument %d must be a String, got %s", name, i+1, args[i].Kind())
	}
	return args[i].Str(), nil
}

// wantArgs fails unless len(args) is within [lo, hi]. Used by variadic
// functions that still bound their argument count.
func wantArgs(name string, args []value.Value, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return xerr.Runtimef("%s: expected %d arguments, got %d", name, lo, len(args))
		}
		return xerr.Runtimef("%s: expected %d to %d arguments, got %d", name, lo, hi, len(args))
	}
	return nil
}

// numericArgs collects the numeric operands for aggregate functions. A
// single List argument contributes its elements; otherwise each argument
// is taken directly. Reports whether every operand was an Int.
func numericArgs(name string, args []value.Value) ([]float64, bool, error) {
	operands := args
	if len(args) == 1 && args[0].Kind() == value.KindList {
		operands = args[0].List()
	}
	out := make([]float64, len(operands))
	allInt := true
	for i, v := range operands {
		f, ok := v.AsFloat()
		if !ok {
			return nil, false, xerr.Runtimef("%s: operand %d must be a number, got %s", name, i+1, v.Kind())
		}
		if v.Kind() != value.KindInt {
			allInt = false
		}
		out[i] = f
	}
	return out, allInt, nil
}
