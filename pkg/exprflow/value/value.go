// Package value defines the dynamic value model exchanged between the
// engine and its callers.
//
// A Value is a compact tagged union over the eight runtime kinds: Null,
// Bool, Int, Float, String, List, Map, and Struct. Values are immutable
// from the engine's perspective; List, Map, String, and Struct payloads are
// shared by reference, so copying a Value is cheap.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind byte

const (
	// KindNull is the absent value.
	KindNull Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindInt is a signed 64-bit integer.
	KindInt

	// KindFloat is an IEEE-754 64-bit float.
	KindFloat

	// KindString is a UTF-8 string.
	KindString

	// KindList is an ordered sequence of values.
	KindList

	// KindMap maps string keys to values.
	KindMap

	// KindStruct is a host-supplied record with interned symbolic keys.
	KindStruct
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindStruct:
		return "Struct"
	default:
		return "Invalid"
	}
}

// Value is a dynamic runtime value.
//
// The zero Value is Null. Scalar variants are stored inline so arithmetic
// never allocates; List, Map, and Struct payloads live behind obj.
type Value struct {
	kind Kind
	bval bool
	ival int64
	fval float64
	sval string
	obj  any // []Value, map[string]Value, or *Struct
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, bval: b}
}

// Int wraps a signed 64-bit integer.
func Int(i int64) Value {
	return Value{kind: KindInt, ival: i}
}

// Float wraps a 64-bit float.
func Float(f float64) Value {
	return Value{kind: KindFloat, fval: f}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, sval: s}
}

// List wraps a sequence of values. The slice is shared, not copied.
func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindList, obj: elems}
}

// Map wraps a string-keyed map. The map is shared, not copied.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, obj: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.bval
}

// Int64 returns the integer payload. Valid only for KindInt.
func (v Value) Int64() int64 {
	return v.ival
}

// Float64 returns the float payload. Valid only for KindFloat.
func (v Value) Float64() float64 {
	return v.fval
}

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string {
	return v.sval
}

// List returns the element slice. Valid only for KindList.
func (v Value) List() []Value {
	elems, _ := v.obj.([]Value)
	return elems
}

// Map returns the underlying map. Valid only for KindMap.
// The returned map must not be modified.
func (v Value) Map() map[string]Value {
	m, _ := v.obj.(map[string]Value)
	return m
}

// Struct returns the underlying record. Valid only for KindStruct.
func (v Value) Struct() *Struct {
	s, _ := v.obj.(*Struct)
	return s
}

// IsNumber reports whether v is an Int or a Float.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// AsFloat returns the numeric payload widened to float64.
// Returns false for non-numeric values.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.ival), true
	case KindFloat:
		return v.fval, true
	default:
		return 0, false
	}
}

// Truthy reports the truthiness of v: Null and false are falsy,
// everything else (including 0, "", [], and {}) is truthy.
func (v Value) Truthy() bool {
	if v.kind == KindNull {
		return false
	}
	if v.kind == KindBool {
		return v.bval
	}
	return true
}

// String renders v for display and for string-producing builtins.
// Scalars render without decoration; containers render in literal form.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.bval)
	case KindInt:
		return strconv.FormatInt(v.ival, 10)
	case KindFloat:
		return strconv.FormatFloat(v.fval, 'g', -1, 64)
	case KindString:
		return v.sval
	case KindList:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.List() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	case KindMap:
		m := v.Map()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(m[k].String())
		}
		b.WriteByte('}')
		return b.String()
	case KindStruct:
		return v.Struct().render()
	default:
		return "invalid"
	}
}

// FromAny converts plain Go data into a Value. Supported inputs: nil, bool,
// int, int8–int64, uint, uint8–uint32 (uint64 is rejected), float32/64, string, []any, map[string]any, []Value,
// map[string]Value, *Struct, and Value itself (returned unchanged).
//
// Use this to build scopes from JSON-decoded data.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []Value:
		return List(t...), nil
	case map[string]Value:
		return Map(t), nil
	case *Struct:
		return structValue(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), err
			}
			elems[i] = v
		}
		return List(elems...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), err
			}
			m[k] = v
		}
		return Map(m), nil
	default:
		return Null(), fmt.Errorf("value: unsupported Go type %T", x)
	}
}

// MustFromAny converts plain Go data into a Value, panicking on
// unsupported types. Convenient for literals in tests and examples.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// ToAny converts a Value back into plain Go data: nil, bool, int64,
// float64, string, []any, or map[string]any. Structs convert to
// map[string]any keyed by symbol name.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.bval
	case KindInt:
		return v.ival
	case KindFloat:
		return v.fval
	case KindString:
		return v.sval
	case KindList:
		elems := v.List()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = ToAny(e)
		}
		return out
	case KindMap:
		m := v.Map()
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = ToAny(e)
		}
		return out
	case KindStruct:
		st := v.Struct()
		out := make(map[string]any, len(st.fields))
		for sym, e := range st.fields {
			out[sym.name] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}
