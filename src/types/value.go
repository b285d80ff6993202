package types

import "fmt"

type (
	valueKind uint8
	// Native is a host function that can be stored in a Value and called from
	// bytecode. Implementations must be comparable, in practice a pointer.
	Native interface {
		Name() string
		Invoke(args *Table) (Value, error)
	}
	// Value is the sum of everything a program can hold: a Primitive, a Table,
	// a function pointer (an instruction address) or a Native. The zero Value
	// is nil.
	Value struct {
		kind   valueKind
		prim   Primitive
		table  *Table
		addr   int
		native Native
	}
)

const (
	valuePrimitive valueKind = iota
	valueTable
	valueFunctionPointer
	valueNative
)

// NilValue returns the nil value.
func NilValue() Value { return Value{} }

// TableValue wraps t. A nil t is replaced with an empty table.
func TableValue(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: valueTable, table: t}
}

// FunctionPointer returns a function value naming the instruction at addr.
func FunctionPointer(addr int) Value {
	return Value{kind: valueFunctionPointer, addr: addr}
}

// NativeValue wraps a host function.
func NativeValue(fn Native) Value {
	if fn == nil {
		return NilValue()
	}
	return Value{kind: valueNative, native: fn}
}

// Type returns the program visible type of v.
func (v Value) Type() Type {
	switch v.kind {
	case valueTable:
		return TypeTable
	case valueFunctionPointer, valueNative:
		return TypeFunction
	default:
		return v.prim.Type()
	}
}

// IsNil reports whether v is the nil primitive.
func (v Value) IsNil() bool { return v.kind == valuePrimitive && v.prim.IsNil() }

// IsFunction reports whether v can be called.
func (v Value) IsFunction() bool { return v.Type() == TypeFunction }

// AsPrimitive returns the primitive held by v.
func (v Value) AsPrimitive() (Primitive, bool) { return v.prim, v.kind == valuePrimitive }

// AsTable returns the table held by v. The table is shared, not cloned.
func (v Value) AsTable() (*Table, bool) { return v.table, v.kind == valueTable }

// AsFunctionPointer returns the instruction address held by v.
func (v Value) AsFunctionPointer() (int, bool) { return v.addr, v.kind == valueFunctionPointer }

// AsNative returns the host function held by v.
func (v Value) AsNative() (Native, bool) { return v.native, v.kind == valueNative }

// AsNumber is a shortcut for a number primitive.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != valuePrimitive {
		return 0, false
	}
	return v.prim.AsNumber()
}

// AsString is a shortcut for a string primitive.
func (v Value) AsString() (string, bool) {
	if v.kind != valuePrimitive {
		return "", false
	}
	return v.prim.AsString()
}

// Truthy applies the boolean coercion rules: nil, false, zero, the empty
// string and tables without any non-nil binding are false. Functions and NaN
// are true.
func (v Value) Truthy() bool {
	switch v.kind {
	case valueTable:
		return v.table.Truthy()
	case valueFunctionPointer, valueNative:
		return true
	default:
		return v.prim.Truthy()
	}
}

// Equal compares structurally. Tables are equal when their non-nil bindings
// are, function pointers when they name the same address and natives when they
// are the same function.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case valueTable:
		return v.table.Equal(other.table)
	case valueFunctionPointer:
		return v.addr == other.addr
	case valueNative:
		return v.native == other.native
	default:
		return v.prim.Equal(other.prim)
	}
}

// Clone returns a deep copy of v. Only tables need copying, everything else is
// immutable.
func (v Value) Clone() Value {
	if v.kind == valueTable {
		return Value{kind: valueTable, table: v.table.Clone()}
	}
	return v
}

func (v Value) String() string {
	switch v.kind {
	case valueTable:
		return v.table.String()
	case valueFunctionPointer:
		return fmt.Sprintf("function:[@%d]", v.addr)
	case valueNative:
		return fmt.Sprintf("function:[%s()]", v.native.Name())
	default:
		return v.prim.String()
	}
}

// GoString is String with strings quoted.
func (v Value) GoString() string {
	if v.kind == valuePrimitive {
		return v.prim.GoString()
	}
	return v.String()
}
