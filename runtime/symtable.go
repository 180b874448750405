package runtime

import (
	"fmt"
	"sort"
	"strconv"
)

// Symbol table for variables. Symbol tables are attached to memory frames.

// --- Values -----------------------------------------------------

// Value is a numeric value of a variable or temporary. Integral values are
// stored as floats; Typ tells how to print them.
type Value struct {
	Typ int8
	N   float64
}

// Pre-defined value types.
const (
	Undefined int8 = iota
	IntegerType
	FloatType
)

// Int creates an integer value.
func Int(n int64) Value {
	return Value{Typ: IntegerType, N: float64(n)}
}

// Float creates a floating point value.
func Float(f float64) Value {
	return Value{Typ: FloatType, N: f}
}

// Bool creates an integer value of 1 for true, 0 for false.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// ParseValue converts a numeric literal, e.g. "42", "-1" or "3.14".
func ParseValue(lit string) (Value, error) {
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("not a number: %q", lit)
	}
	return Float(f), nil
}

// Truthy is false for undefined values and zero.
func (v Value) Truthy() bool {
	return v.Typ != Undefined && v.N != 0
}

func (v Value) String() string {
	switch v.Typ {
	case IntegerType:
		return strconv.FormatInt(int64(v.N), 10)
	case FloatType:
		return strconv.FormatFloat(v.N, 'g', -1, 64)
	}
	return "<undefined>"
}

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It may be a
// little surprising this type is not called 'Symbol', but I prefer the
// name 'Tag' because it is less confusing when dealing with parser
// generators and grammars: Grammars consist of symbols (within rules), too.
// Thus, symbols are used in the scope of the grammar, tags are used during
// runtime (of the client program).
//
type Tag struct {
	name  string
	value Value
}

// NewTag creates a new tag with an undefined value.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// String is a debug Stringer for symbols.
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%s>", s.Name(), s.value)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// Value gets the tag's current value.
func (s *Tag) Value() Value {
	return s.value
}

// Set sets the tag's value.
func (s *Tag) Set(v Value) {
	s.value = v
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table     map[string]*Tag
	createTag func(string) *Tag
}

// NewSymbolTable creates an empty symbol table.
//
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table:     make(map[string]*Tag),
		createTag: NewTag,
	}
	return &symtab
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
//
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag finds
// a tag in the table, inserts a new one if not found.
// Creates non-existent tags on the fly.
// Returns the tag and a flag, signalling wether the tag
// has already been present.
//
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	found := true
	tag := t.ResolveTag(tagname)
	if tag == nil { // if not already there, insert it
		tag, _ = t.DefineTag(tagname)
		found = false
	}
	return tag, found
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
//
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := t.createTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created symbol.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each tag in the table, ordered by name, executing a
// mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	names := make([]string, 0, len(t.Table))
	for k := range t.Table {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		mapper(k, t.Table[k])
	}
}
