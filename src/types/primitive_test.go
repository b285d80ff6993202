package types

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveCompare(t *testing.T) {
	t.Parallel()
	sorted := []Primitive{
		Nil(),
		Bool(false),
		Bool(true),
		Num(math.NaN()),
		Num(math.Inf(-1)),
		Num(-1),
		Num(2),
		Str(""),
		Str("a"),
		Str("b"),
	}
	shuffled := []Primitive{sorted[8], sorted[3], sorted[0], sorted[9], sorted[5], sorted[1], sorted[7], sorted[6], sorted[2], sorted[4]}
	slices.SortFunc(shuffled, Primitive.Compare)
	for i := range sorted {
		assert.True(t, sorted[i].Equal(shuffled[i]), "%d: %#v != %#v", i, sorted[i], shuffled[i])
	}
}

func TestPrimitiveKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Num(math.NaN()).key(), Num(math.NaN()).key())
	assert.Equal(t, Num(0).key(), Num(math.Copysign(0, -1)).key())
	assert.NotEqual(t, Num(1).key(), Str("1").key())
	assert.NotEqual(t, Bool(false).key(), Nil().key())
}

func TestPrimitiveTruthy(t *testing.T) {
	t.Parallel()
	assert.False(t, Nil().Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.False(t, Num(0).Truthy())
	assert.True(t, Num(math.NaN()).Truthy())
	assert.False(t, Str("").Truthy())
	assert.True(t, Str("0").Truthy())
}

func TestPrimitiveAccessors(t *testing.T) {
	t.Parallel()
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = Str("x").AsNumber()
	assert.False(t, ok)
	s, ok := Str("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	assert.True(t, Primitive{}.IsNil())
	assert.Equal(t, TypeNumber, Num(uint8(3)).Type())
}

func TestPrimitiveString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "nil", Nil().String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "12", Num(12).String())
	assert.Equal(t, "hi", Str("hi").String())
	assert.Equal(t, `"hi"`, Str("hi").GoString())
}
