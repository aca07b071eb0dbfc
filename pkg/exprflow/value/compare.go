package value

import "fmt"

// Equal reports structural equality between two values.
//
// Numeric comparison coerces Int to Float as needed, so Int(3) equals
// Float(3.0). Values of incompatible kinds are never equal; equality is
// total and never errors.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		if a.kind == KindInt && b.kind == KindInt {
			return a.ival == b.ival
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.bval == b.bval
	case KindString:
		return a.sval == b.sval
	case KindList:
		as, bs := a.List(), b.List()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	case KindMap:
		am, bm := a.Map(), b.Map()
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindStruct:
		ast, bst := a.Struct(), b.Struct()
		if ast.Len() != bst.Len() {
			return false
		}
		for sym, av := range ast.fields {
			bv, ok := bst.fields[sym]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values within a compatible group: numbers (with
// Int→Float coercion), strings (lexicographic), or booleans (false < true).
// It returns -1, 0, or +1, or an error for any other pairing.
func Compare(a, b Value) (int, error) {
	if a.IsNumber() && b.IsNumber() {
		if a.kind == KindInt && b.kind == KindInt {
			return cmp(a.ival, b.ival), nil
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return cmp(af, bf), nil
	}
	if a.kind == KindString && b.kind == KindString {
		return cmp(a.sval, b.sval), nil
	}
	if a.kind == KindBool && b.kind == KindBool {
		av, bv := 0, 0
		if a.bval {
			av = 1
		}
		if b.bval {
			bv = 1
		}
		return cmp(av, bv), nil
	}
	return 0, fmt.Errorf("cannot compare %s and %s", a.kind, b.kind)
}

func cmp[T int | int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
