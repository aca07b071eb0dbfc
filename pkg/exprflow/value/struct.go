package value

import (
	"sort"
	"strings"
	"sync"
)

// Symbol is an interned symbolic key used by Struct records.
//
// Symbols are interned process-wide: two symbols with the same name are the
// same pointer, so key comparison is pointer equality. Interning happens
// only when a host constructs a Struct; expressions can never mint new
// symbols. That keeps the intern table bounded by what hosts declare, no
// matter what user expressions do.
type Symbol struct {
	name string
}

// Name returns the symbol's textual name.
func (s *Symbol) Name() string {
	return s.name
}

// symtab is the process-wide symbol intern table.
var symtab sync.Map // string -> *Symbol

// intern returns the unique Symbol for name, creating it if needed.
// Not exported: only Struct construction may grow the table.
func intern(name string) *Symbol {
	if sym, ok := symtab.Load(name); ok {
		return sym.(*Symbol)
	}
	sym, _ := symtab.LoadOrStore(name, &Symbol{name: name})
	return sym.(*Symbol)
}

// Struct is a host-supplied record with a fixed, interned key set.
//
// Unlike Map, a Struct's keys are Symbols. String lookups resolve only to
// keys that already exist on the record; a name that is not among the
// record's keys misses without touching the intern table.
type Struct struct {
	fields map[*Symbol]Value
	byName map[string]*Symbol
}

// NewStruct builds a Struct value from string-keyed fields, interning each
// key. This is the only path that grows the symbol table.
func NewStruct(fields map[string]Value) Value {
	st := &Struct{
		fields: make(map[*Symbol]Value, len(fields)),
		byName: make(map[string]*Symbol, len(fields)),
	}
	for name, v := range fields {
		sym := intern(name)
		st.fields[sym] = v
		st.byName[name] = sym
	}
	return structValue(st)
}

// structValue wraps an existing *Struct as a Value.
func structValue(st *Struct) Value {
	return Value{kind: KindStruct, obj: st}
}

// Get returns the field for an interned symbol.
func (st *Struct) Get(sym *Symbol) (Value, bool) {
	v, ok := st.fields[sym]
	return v, ok
}

// Lookup resolves a string name against the record's existing keys.
// It never interns: names not already on the record simply miss.
func (st *Struct) Lookup(name string) (Value, bool) {
	sym, ok := st.byName[name]
	if !ok {
		return Value{}, false
	}
	return st.fields[sym], true
}

// Has reports whether the record has a field with the given name.
func (st *Struct) Has(name string) bool {
	_, ok := st.byName[name]
	return ok
}

// Len returns the number of fields.
func (st *Struct) Len() int {
	return len(st.fields)
}

// Names returns the field names in sorted order.
func (st *Struct) Names() []string {
	names := make([]string, 0, len(st.byName))
	for name := range st.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// render formats the record for Value.String.
func (st *Struct) render() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range st.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		v, _ := st.Lookup(name)
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}
