package registry

import (
	"math"

	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// mathFunctions returns the numeric built-ins.
func mathFunctions() []FunctionImpl {
	return []FunctionImpl{
		NewFunc("abs", Fixed(1), func(args []value.Value) (value.Value, error) {
			switch args[0].Kind() {
			case value.KindInt:
				i := args[0].Int64()
				if i < 0 {
					i = -i
				}
				return value.Int(i), nil
			case value.KindFloat:
				return value.Float(math.Abs(args[0].Float64())), nil
			default:
				return value.Null(), xerr.Runtimef("abs: argument must be a number, got %s", args[0].Kind())
			}
		}),

		NewFunc("round", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("round", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.Int(int64(math.Round(f))), nil
		}),

		NewFunc("floor", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("floor", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.Int(int64(math.Floor(f))), nil
		}),

		NewFunc("ceil", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("ceil", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.Int(int64(math.Ceil(f))), nil
		}),

		NewFunc("trunc", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("trunc", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.Int(int64(math.Trunc(f))), nil
		}),

		NewFunc("sign", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("sign", args, 0)
			if err != nil {
				return value.Null(), err
			}
			switch {
			case f > 0:
				return value.Int(1), nil
			case f < 0:
				return value.Int(-1), nil
			default:
				return value.Int(0), nil
			}
		}),

		NewFunc("max", Any(), func(args []value.Value) (value.Value, error) {
			nums, allInt, err := numericArgs("max", args)
			if err != nil {
				return value.Null(), err
			}
			if len(nums) == 0 {
				return value.Null(), xerr.Runtimef("max: expected at least 1 operand")
			}
			best := nums[0]
			for _, f := range nums[1:] {
				if f > best {
					best = f
				}
			}
			if allInt {
				return value.Int(int64(best)), nil
			}
			return value.Float(best), nil
		}),

		NewFunc("min", Any(), func(args []value.Value) (value.Value, error) {
			nums, allInt, err := numericArgs("min", args)
			if err != nil {
				return value.Null(), err
			}
			if len(nums) == 0 {
				return value.Null(), xerr.Runtimef("min: expected at least 1 operand")
			}
			best := nums[0]
			for _, f := range nums[1:] {
				if f < best {
					best = f
				}
			}
			if allInt {
				return value.Int(int64(best)), nil
			}
			return value.Float(best), nil
		}),

		NewFunc("sqrt", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("sqrt", args, 0)
			if err != nil {
				return value.Null(), err
			}
			if f < 0 {
				return value.Null(), xerr.Runtimef("sqrt: argument must be non-negative, got %v", f)
			}
			return value.Float(math.Sqrt(f)), nil
		}),

		NewFunc("exp", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("exp", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.Float(math.Exp(f)), nil
		}),

		NewFunc("ln", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("ln", args, 0)
			if err != nil {
				return value.Null(), err
			}
			if f <= 0 {
				return value.Null(), xerr.Runtimef("ln: argument must be positive, got %v", f)
			}
			return value.Float(math.Log(f)), nil
		}),

		NewFunc("log", Fixed(2), func(args []value.Value) (value.Value, error) {
			x, err := argNumber("log", args, 0)
			if err != nil {
				return value.Null(), err
			}
			base, err := argNumber("log", args, 1)
			if err != nil {
				return value.Null(), err
			}
			if x <= 0 {
				return value.Null(), xerr.Runtimef("log: argument must be positive, got %v", x)
			}
			if base <= 0 || base == 1 {
				return value.Null(), xerr.Runtimef("log: invalid base %v", base)
			}
			return value.Float(math.Log(x) / math.Log(base)), nil
		}),

		NewFunc("log10", Fixed(1), func(args []value.Value) (value.Value, error) {
			f, err := argNumber("log10", args, 0)
			if err != nil {
				return value.Null(), err
			}
			if f <= 0 {
				return value.Null(), xerr.Runtimef("log10: argument must be positive, got %v", f)
			}
			return value.Float(math.Log10(f)), nil
		}),

		NewFunc("sum", Any(), func(args []value.Value) (value.Value, error) {
			nums, allInt, err := numericArgs("sum", args)
			if err != nil {
				return value.Null(), err
			}
			total := 0.0
			for _, f := range nums {
				total += f
			}
			if allInt {
				return value.Int(int64(total)), nil
			}
			return value.Float(total), nil
		}),

		NewFunc("avg", Any(), func(args []value.Value) (value.Value, error) {
			nums, _, err := numericArgs("avg", args)
			if err != nil {
				return value.Null(), err
			}
			if len(nums) == 0 {
				return value.Null(), xerr.Runtimef("avg: expected at least 1 operand")
			}
			total := 0.0
			for _, f := range nums {
				total += f
			}
			return value.Float(total / float64(len(nums))), nil
		}),
	}
}
