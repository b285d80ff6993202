package types

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
)

type (
	// Table maps primitive keys to values. It is at once a dictionary and a
	// list: the list is the run of bindings at 0, 1, 2... that ends at the first
	// missing or nil key. A key bound to nil is treated as absent everywhere
	// except Get, which still reports that the binding exists.
	Table struct {
		hashtable map[primitiveKey]*entry
	}
	entry struct {
		key Primitive
		val Value
	}
	// Pair is a key and value used to build dictionaries.
	Pair struct {
		Key Primitive
		Val Value
	}
)

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{hashtable: map[primitiveKey]*entry{}}
}

// NewSizedTable creates an empty table with room for size bindings.
func NewSizedTable(size int) *Table {
	return &Table{hashtable: make(map[primitiveKey]*entry, size)}
}

// NewList creates a table with vals bound to the keys 0 to len(vals)-1.
func NewList(vals ...Value) *Table {
	t := NewSizedTable(len(vals))
	for i, val := range vals {
		t.Set(Num(i), val)
	}
	return t
}

// NewDict creates a table from pairs. Later pairs overwrite earlier ones.
func NewDict(pairs ...Pair) *Table {
	t := NewSizedTable(len(pairs))
	for _, pair := range pairs {
		t.Set(pair.Key, pair.Val)
	}
	return t
}

// Set binds key to val unconditionally. Setting nil is how a key is deleted.
func (t *Table) Set(key Primitive, val Value) {
	if t.hashtable == nil {
		t.hashtable = map[primitiveKey]*entry{}
	}
	k := key.key()
	if e, ok := t.hashtable[k]; ok {
		e.val = val
		return
	}
	t.hashtable[k] = &entry{key: key, val: val}
}

// Get returns the value bound to key. The bool is false only if key was never
// bound, so a key explicitly set to nil returns (nil, true).
func (t *Table) Get(key Primitive) (Value, bool) {
	if e, ok := t.hashtable[key.key()]; ok {
		return e.val, true
	}
	return NilValue(), false
}

// Index returns the value for key or nil, without telling absent and nil apart.
func (t *Table) Index(key Primitive) Value {
	val, _ := t.Get(key)
	return val
}

// GetMut returns the slot for key so it can be overwritten in place. A missing
// key is bound to nil first.
func (t *Table) GetMut(key Primitive) *Value {
	if t.hashtable == nil {
		t.hashtable = map[primitiveKey]*entry{}
	}
	k := key.key()
	e, ok := t.hashtable[k]
	if !ok {
		e = &entry{key: key}
		t.hashtable[k] = e
	}
	return &e.val
}

// Remove deletes the binding for key if there is one and returns what it held.
func (t *Table) Remove(key Primitive) (Value, bool) {
	k := key.key()
	e, ok := t.hashtable[k]
	if !ok {
		return NilValue(), false
	}
	delete(t.hashtable, k)
	return e.val, true
}

// Compact drops every binding to nil.
func (t *Table) Compact() {
	for k, e := range t.hashtable {
		if e.val.IsNil() {
			delete(t.hashtable, k)
		}
	}
}

// Len counts the non-nil bindings.
func (t *Table) Len() int {
	count := 0
	for _, e := range t.hashtable {
		if !e.val.IsNil() {
			count++
		}
	}
	return count
}

// ListLen is the length of the list part: the number of consecutive non-nil
// bindings starting at key 0.
func (t *Table) ListLen() int {
	i := 0
	for ; ; i++ {
		if val := t.Index(Num(i)); val.IsNil() {
			return i
		}
	}
}

// List returns the values of the list part in order.
func (t *Table) List() []Value {
	vals := []Value{}
	for i := 0; ; i++ {
		val := t.Index(Num(i))
		if val.IsNil() {
			return vals
		}
		vals = append(vals, val)
	}
}

// Keys returns the keys of all non-nil bindings in primitive order.
func (t *Table) Keys() []Primitive {
	keys := make([]Primitive, 0, len(t.hashtable))
	for _, e := range t.hashtable {
		if !e.val.IsNil() {
			keys = append(keys, e.key)
		}
	}
	slices.SortFunc(keys, Primitive.Compare)
	return keys
}

// All iterates over the non-nil bindings in key order.
func (t *Table) All() iter.Seq2[Primitive, Value] {
	return func(yield func(Primitive, Value) bool) {
		for _, key := range t.Keys() {
			if !yield(key, t.Index(key)) {
				return
			}
		}
	}
}

// Truthy is true when the table has at least one non-nil binding.
func (t *Table) Truthy() bool {
	for _, e := range t.hashtable {
		if !e.val.IsNil() {
			return true
		}
	}
	return false
}

// Equal holds when every non-nil binding in either table is bound to an equal
// value in the other. Nil bindings and missing keys are the same thing.
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	} else if t == nil || other == nil {
		return false
	}
	return t.subsetOf(other) && other.subsetOf(t)
}

func (t *Table) subsetOf(other *Table) bool {
	for k, e := range t.hashtable {
		if e.val.IsNil() {
			continue
		}
		o, ok := other.hashtable[k]
		if !ok || !e.val.Equal(o.val) {
			return false
		}
	}
	return true
}

// Merge returns a copy of t with every non-nil binding of other written over it.
func (t *Table) Merge(other *Table) *Table {
	merged := t.Clone()
	for _, e := range other.hashtable {
		if !e.val.IsNil() {
			merged.Set(e.key, e.val.Clone())
		}
	}
	return merged
}

// Clone deep copies the table, nested tables included.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	clone := NewSizedTable(len(t.hashtable))
	for k, e := range t.hashtable {
		clone.hashtable[k] = &entry{key: e.key, val: e.val.Clone()}
	}
	return clone
}

func (t *Table) String() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "{")
	parts := 0
	sep := func() {
		if parts > 0 {
			fmt.Fprint(&buf, ",")
		}
		parts++
	}
	listLen := t.ListLen()
	for i := range listLen {
		sep()
		fmt.Fprintf(&buf, " %#v", t.Index(Num(i)))
	}
	for key, val := range t.All() {
		if n, isNum := key.AsNumber(); isNum && n.IsInteger() && n >= 0 && n < Number(listLen) {
			continue
		}
		sep()
		if s, isStr := key.AsString(); isStr {
			fmt.Fprintf(&buf, " %s = %#v", s, val)
		} else {
			fmt.Fprintf(&buf, " [%#v] = %#v", key, val)
		}
	}
	fmt.Fprint(&buf, " }")
	return buf.String()
}
