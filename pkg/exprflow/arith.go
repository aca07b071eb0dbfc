package exprflow

import (
	"math"

	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/ir"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// lowerArithmetic builds the closure for +, -, *, /, % and ^.
//
// Coercion: Int op Int stays Int for + - * and %; any Float operand
// widens both sides to Float. Division and exponentiation are always
// floating-point, matching spreadsheet semantics.
func lowerArithmetic(op ir.BinaryOp, left, right evalFn) evalFn {
	return func(scope value.Value) (value.Value, error) {
		l, r, err := evalPair(left, right, scope)
		if err != nil {
			return value.Null(), err
		}
		if !l.IsNumber() || !r.IsNumber() {
			return value.Null(), xerr.Runtimef("cannot apply %q to %s and %s", op.String(), l.Kind(), r.Kind())
		}
		bothInt := l.Kind() == value.KindInt && r.Kind() == value.KindInt

		switch op {
		case ir.OpAdd:
			if bothInt {
				return value.Int(l.Int64() + r.Int64()), nil
			}
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			return value.Float(lf + rf), nil
		case ir.OpSub:
			if bothInt {
				return value.Int(l.Int64() - r.Int64()), nil
			}
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			return value.Float(lf - rf), nil
		case ir.OpMul:
			if bothInt {
				return value.Int(l.Int64() * r.Int64()), nil
			}
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			return value.Float(lf * rf), nil
		case ir.OpDiv:
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			if rf == 0 {
				return value.Null(), xerr.Runtimef("division by zero")
			}
			return value.Float(lf / rf), nil
		case ir.OpMod:
			if bothInt {
				if r.Int64() == 0 {
					return value.Null(), xerr.Runtimef("division by zero")
				}
				// Go's % already keeps the sign of the dividend.
				return value.Int(l.Int64() % r.Int64()), nil
			}
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			if rf == 0 {
				return value.Null(), xerr.Runtimef("division by zero")
			}
			return value.Float(math.Mod(lf, rf)), nil
		default: // ir.OpPow
			lf, _ := l.AsFloat()
			rf, _ := r.AsFloat()
			return value.Float(math.Pow(lf, rf)), nil
		}
	}
}

// lowerBitwise builds the closure for &, |, |^, << and >>. All bitwise
// operators require Int operands.
func lowerBitwise(op ir.BinaryOp, left, right evalFn) evalFn {
	return func(scope value.Value) (value.Value, error) {
		l, r, err := evalPair(left, right, scope)
		if err != nil {
			return value.Null(), err
		}
		if l.Kind() != value.KindInt || r.Kind() != value.KindInt {
			return value.Null(), xerr.Runtimef("bitwise %q requires Int operands, got %s and %s", op.String(), l.Kind(), r.Kind())
		}
		li, ri := l.Int64(), r.Int64()
		switch op {
		case ir.OpBitAnd:
			return value.Int(li & ri), nil
		case ir.OpBitOr:
			return value.Int(li | ri), nil
		case ir.OpBitXor:
			return value.Int(li ^ ri), nil
		case ir.OpShl:
			if ri < 0 {
				return value.Null(), xerr.Runtimef("negative shift count %d", ri)
			}
			return value.Int(li << uint64(ri)), nil
		default: // ir.OpShr
			if ri < 0 {
				return value.Null(), xerr.Runtimef("negative shift count %d", ri)
			}
			return value.Int(li >> uint64(ri)), nil
		}
	}
}
