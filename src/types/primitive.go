package types

import (
	"strconv"
	"strings"
)

type (
	// Primitive is one of nil, a bool, a number or a string. The zero value is
	// nil. Primitives have a total order, variant first then payload, and are
	// the only values usable as table keys.
	Primitive struct {
		kind Type
		b    bool
		n    Number
		s    string
	}
	// primitiveKey is the canonical comparable form of a Primitive. Equal
	// primitives always produce the same key.
	primitiveKey struct {
		kind Type
		b    bool
		n    uint64
		s    string
	}
)

// Nil returns the nil primitive.
func Nil() Primitive { return Primitive{} }

// Bool returns a boolean primitive.
func Bool(b bool) Primitive { return Primitive{kind: TypeBool, b: b} }

// Num returns a number primitive.
func Num[N ~float64 | ~float32 | ~int | ~int64 | ~int32 | ~int16 | ~int8 | ~uint | ~uint64 | ~uint32 | ~uint16 | ~uint8](n N) Primitive {
	return Primitive{kind: TypeNumber, n: Number(n)}
}

// Str returns a string primitive.
func Str(s string) Primitive { return Primitive{kind: TypeString, s: s} }

// Type returns which variant p holds.
func (p Primitive) Type() Type { return p.kind }

// IsNil reports whether p is nil.
func (p Primitive) IsNil() bool { return p.kind == TypeNil }

// AsBool returns the boolean payload.
func (p Primitive) AsBool() (bool, bool) { return p.b, p.kind == TypeBool }

// AsNumber returns the number payload.
func (p Primitive) AsNumber() (Number, bool) { return p.n, p.kind == TypeNumber }

// AsString returns the string payload.
func (p Primitive) AsString() (string, bool) { return p.s, p.kind == TypeString }

// Compare orders primitives by variant (nil < bool < number < string) and
// then by payload.
func (p Primitive) Compare(other Primitive) int {
	if p.kind != other.kind {
		if p.kind < other.kind {
			return -1
		}
		return 1
	}
	switch p.kind {
	case TypeBool:
		if p.b == other.b {
			return 0
		} else if !p.b {
			return -1
		}
		return 1
	case TypeNumber:
		return p.n.Compare(other.n)
	case TypeString:
		return strings.Compare(p.s, other.s)
	default:
		return 0
	}
}

// Equal reports whether Compare is 0.
func (p Primitive) Equal(other Primitive) bool {
	return p.Compare(other) == 0
}

// Truthy is false for nil, false, zero and the empty string.
func (p Primitive) Truthy() bool {
	switch p.kind {
	case TypeBool:
		return p.b
	case TypeNumber:
		return p.n.Truthy()
	case TypeString:
		return p.s != ""
	default:
		return false
	}
}

func (p Primitive) key() primitiveKey {
	switch p.kind {
	case TypeBool:
		return primitiveKey{kind: TypeBool, b: p.b}
	case TypeNumber:
		return primitiveKey{kind: TypeNumber, n: p.n.Hash()}
	case TypeString:
		return primitiveKey{kind: TypeString, s: p.s}
	default:
		return primitiveKey{}
	}
}

// Value wraps p as a Value.
func (p Primitive) Value() Value { return Value{kind: valuePrimitive, prim: p} }

func (p Primitive) String() string {
	switch p.kind {
	case TypeBool:
		return strconv.FormatBool(p.b)
	case TypeNumber:
		return p.n.String()
	case TypeString:
		return p.s
	default:
		return NameNil
	}
}

// GoString quotes strings so that listings can tell "1" from 1.
func (p Primitive) GoString() string {
	if p.kind == TypeString {
		return strconv.Quote(p.s)
	}
	return p.String()
}
