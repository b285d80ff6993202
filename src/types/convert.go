package types

import (
	"fmt"
	"slices"
)

// ToValue converts a Go value into a Value. Slices become lists and maps with
// string keys become dictionaries, recursively. struct{} and nil are nil.
func ToValue(in any) (Value, error) {
	switch tin := in.(type) {
	case nil, struct{}:
		return NilValue(), nil
	case Value:
		return tin, nil
	case *Table:
		return TableValue(tin), nil
	case Native:
		return NativeValue(tin), nil
	case []Value:
		return TableValue(NewList(tin...)), nil
	case []any:
		t := NewSizedTable(len(tin))
		for i, item := range tin {
			val, err := ToValue(item)
			if err != nil {
				return NilValue(), fmt.Errorf("index %d: %w", i, err)
			}
			t.Set(Num(i), val)
		}
		return TableValue(t), nil
	case []map[string]any:
		t := NewSizedTable(len(tin))
		for i, item := range tin {
			val, err := ToValue(item)
			if err != nil {
				return NilValue(), fmt.Errorf("index %d: %w", i, err)
			}
			t.Set(Num(i), val)
		}
		return TableValue(t), nil
	case map[string]any:
		t := NewSizedTable(len(tin))
		for key, item := range tin {
			val, err := ToValue(item)
			if err != nil {
				return NilValue(), fmt.Errorf("key %q: %w", key, err)
			}
			t.Set(Str(key), val)
		}
		return TableValue(t), nil
	default:
		prim, err := ToPrimitive(in)
		if err != nil {
			return NilValue(), err
		}
		return prim.Value(), nil
	}
}

// MustValue is ToValue for values that are known to convert. It panics otherwise.
func MustValue(in any) Value {
	val, err := ToValue(in)
	if err != nil {
		panic(err)
	}
	return val
}

// ToPrimitive converts Go scalars into a Primitive.
func ToPrimitive(in any) (Primitive, error) {
	switch tin := in.(type) {
	case nil, struct{}:
		return Nil(), nil
	case Primitive:
		return tin, nil
	case Value:
		if prim, ok := tin.AsPrimitive(); ok {
			return prim, nil
		}
		return Nil(), fmt.Errorf("%v value is not a primitive", tin.Type())
	case bool:
		return Bool(tin), nil
	case string:
		return Str(tin), nil
	case Number:
		return Num(tin), nil
	case float64:
		return Num(tin), nil
	case float32:
		return Num(tin), nil
	case int:
		return Num(tin), nil
	case int8:
		return Num(tin), nil
	case int16:
		return Num(tin), nil
	case int32:
		return Num(tin), nil
	case int64:
		return Num(tin), nil
	case uint:
		return Num(tin), nil
	case uint8:
		return Num(tin), nil
	case uint16:
		return Num(tin), nil
	case uint32:
		return Num(tin), nil
	case uint64:
		return Num(tin), nil
	default:
		return Nil(), fmt.Errorf("cannot convert %T to a primitive", in)
	}
}

// FromValue converts v into the Go type T. It supports Value, Primitive,
// Number, *Table, Native, bool, string, struct{} (nil only) and all integer and
// float types. Integer types only accept numbers that they can hold exactly.
func FromValue[T any](v Value) (T, bool) {
	var out T
	ok := false
	switch p := any(&out).(type) {
	case *Value:
		*p, ok = v, true
	case *Primitive:
		*p, ok = v.AsPrimitive()
	case *Number:
		*p, ok = v.AsNumber()
	case **Table:
		*p, ok = v.AsTable()
	case *Native:
		*p, ok = v.AsNative()
	case *struct{}:
		ok = v.IsNil()
	case *bool:
		if prim, isPrim := v.AsPrimitive(); isPrim {
			*p, ok = prim.AsBool()
		}
	case *string:
		*p, ok = v.AsString()
	case *float64:
		var n Number
		n, ok = v.AsNumber()
		*p = float64(n)
	case *float32:
		var n Number
		n, ok = v.AsNumber()
		*p = float32(n)
	case *int:
		ok = toInteger(p, v)
	case *int8:
		ok = toInteger(p, v)
	case *int16:
		ok = toInteger(p, v)
	case *int32:
		ok = toInteger(p, v)
	case *int64:
		ok = toInteger(p, v)
	case *uint:
		ok = toInteger(p, v)
	case *uint8:
		ok = toInteger(p, v)
	case *uint16:
		ok = toInteger(p, v)
	case *uint32:
		ok = toInteger(p, v)
	case *uint64:
		ok = toInteger(p, v)
	}
	if !ok {
		var zero T
		return zero, false
	}
	return out, true
}

func toInteger[I ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](p *I, v Value) bool {
	n, isNum := v.AsNumber()
	if !isNum || !n.IsInteger() {
		return false
	}
	i := I(n)
	if Number(i) != n {
		return false
	}
	*p = i
	return true
}

// ToVars converts a table into a name to value mapping. Keys that are not
// strings are skipped.
func ToVars(t *Table) map[string]Value {
	vars := make(map[string]Value, t.Len())
	for key, val := range t.All() {
		if name, ok := key.AsString(); ok {
			vars[name] = val
		}
	}
	return vars
}

// SortedNames returns the keys of a name mapping in order, for stable output.
func SortedNames(vars map[string]Value) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
