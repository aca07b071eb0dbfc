package registry

import (
	"strings"

	xerr "github.com/randalmurphal/exprflow/pkg/exprflow/errors"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

// stringFunctions returns the text built-ins. All positions and lengths
// are rune-based, not byte-based.
func stringFunctions() []FunctionImpl {
	return []FunctionImpl{
		NewFunc("len", Fixed(1), func(args []value.Value) (value.Value, error) {
			switch args[0].Kind() {
			case value.KindString:
				return value.Int(int64(len([]rune(args[0].Str())))), nil
			case value.KindList:
				return value.Int(int64(len(args[0].List()))), nil
			case value.KindMap:
				return value.Int(int64(len(args[0].Map()))), nil
			case value.KindStruct:
				return value.Int(int64(args[0].Struct().Len())), nil
			default:
				return value.Null(), xerr.Runtimef("len: argument must be String, List, Map or Struct, got %s", args[0].Kind())
			}
		}),

		NewFunc("left", Fixed(2), func(args []value.Value) (value.Value, error) {
			s, err := argString("left", args, 0)
			if err != nil {
				return value.Null(), err
			}
			n, err := argInt("left", args, 1)
			if err != nil {
				return value.Null(), err
			}
			runes := []rune(s)
			n = clampLen(n, len(runes))
			return value.String(string(runes[:n])), nil
		}),

		NewFunc("right", Fixed(2), func(args []value.Value) (value.Value, error) {
			s, err := argString("right", args, 0)
			if err != nil {
				return value.Null(), err
			}
			n, err := argInt("right", args, 1)
			if err != nil {
				return value.Null(), err
			}
			runes := []rune(s)
			n = clampLen(n, len(runes))
			return value.String(string(runes[len(runes)-int(n):])), nil
		}),

		NewFunc("substring", Any(), func(args []value.Value) (value.Value, error) {
			if err := wantArgs("substring", args, 2, 3); err != nil {
				return value.Null(), err
			}
			s, err := argString("substring", args, 0)
			if err != nil {
				return value.Null(), err
			}
			start, err := argInt("substring", args, 1)
			if err != nil {
				return value.Null(), err
			}
			runes := []rune(s)
			if start < 0 {
				start = 0
			}
			if start > int64(len(runes)) {
				start = int64(len(runes))
			}
			end := int64(len(runes))
			if len(args) == 3 {
				n, err := argInt("substring", args, 2)
				if err != nil {
					return value.Null(), err
				}
				if n < 0 {
					n = 0
				}
				if start+n < end {
					end = start + n
				}
			}
			return value.String(string(runes[start:end])), nil
		}),

		NewFunc("upper", Fixed(1), func(args []value.Value) (value.Value, error) {
			s, err := argString("upper", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.String(strings.ToUpper(s)), nil
		}),

		NewFunc("lower", Fixed(1), func(args []value.Value) (value.Value, error) {
			s, err := argString("lower", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.String(strings.ToLower(s)), nil
		}),

		NewFunc("trim", Fixed(1), func(args []value.Value) (value.Value, error) {
			s, err := argString("trim", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.String(strings.TrimSpace(s)), nil
		}),

		NewFunc("concat", Any(), func(args []value.Value) (value.Value, error) {
			var b strings.Builder
			for _, v := range args {
				b.WriteString(v.String())
			}
			return value.String(b.String()), nil
		}),

		NewFunc("textjoin", Any(), func(args []value.Value) (value.Value, error) {
			if len(args) < 1 {
				return value.Null(), xerr.Runtimef("textjoin: expected at least 1 argument (separator)")
			}
			sep, err := argString("textjoin", args, 0)
			if err != nil {
				return value.Null(), err
			}
			var parts []string
			for _, v := range args[1:] {
				// List arguments contribute their elements, like ranges
				// in spreadsheet TEXTJOIN.
				if v.Kind() == value.KindList {
					for _, e := range v.List() {
						parts = append(parts, e.String())
					}
					continue
				}
				parts = append(parts, v.String())
			}
			return value.String(strings.Join(parts, sep)), nil
		}),

		NewFunc("replace", Fixed(3), func(args []value.Value) (value.Value, error) {
			s, err := argString("replace", args, 0)
			if err != nil {
				return value.Null(), err
			}
			old, err := argString("replace", args, 1)
			if err != nil {
				return value.Null(), err
			}
			repl, err := argString("replace", args, 2)
			if err != nil {
				return value.Null(), err
			}
			return value.String(strings.ReplaceAll(s, old, repl)), nil
		}),

		NewFunc("find", Fixed(2), func(args []value.Value) (value.Value, error) {
			needle, err := argString("find", args, 0)
			if err != nil {
				return value.Null(), err
			}
			hay, err := argString("find", args, 1)
			if err != nil {
				return value.Null(), err
			}
			byteIdx := strings.Index(hay, needle)
			if byteIdx < 0 {
				return value.Int(-1), nil
			}
			return value.Int(int64(len([]rune(hay[:byteIdx])))), nil
		}),

		NewFunc("contains", Fixed(2), func(args []value.Value) (value.Value, error) {
			s, err := argString("contains", args, 0)
			if err != nil {
				return value.Null(), err
			}
			sub, err := argString("contains", args, 1)
			if err != nil {
				return value.Null(), err
			}
			return value.Bool(strings.Contains(s, sub)), nil
		}),

		NewFunc("normalize", Fixed(1), func(args []value.Value) (value.Value, error) {
			s, err := argString("normalize", args, 0)
			if err != nil {
				return value.Null(), err
			}
			return value.String(strings.ReplaceAll(strings.ToLower(s), " ", "_")), nil
		}),
	}
}

// clampLen clamps n into [0, size].
func clampLen(n int64, size int) int64 {
	if n < 0 {
		return 0
	}
	if n > int64(size) {
		return int64(size)
	}
	return n
}
