package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToValue(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		in  any
		out Value
	}{
		{in: int(11), out: Num(11).Value()},
		{in: int8(22), out: Num(22).Value()},
		{in: int16(33), out: Num(33).Value()},
		{in: int32(44), out: Num(44).Value()},
		{in: int64(55), out: Num(55).Value()},
		{in: uint(11), out: Num(11).Value()},
		{in: uint8(22), out: Num(22).Value()},
		{in: uint16(33), out: Num(33).Value()},
		{in: uint32(44), out: Num(44).Value()},
		{in: uint64(55), out: Num(55).Value()},
		{in: float32(44), out: Num(44).Value()},
		{in: float64(55), out: Num(55).Value()},
		{in: Number(66), out: Num(66).Value()},
		{in: true, out: Bool(true).Value()},
		{in: false, out: Bool(false).Value()},
		{in: nil, out: NilValue()},
		{in: struct{}{}, out: NilValue()},
		{in: "hello world", out: Str("hello world").Value()},
		{in: Str("hello world"), out: Str("hello world").Value()},
		{in: FunctionPointer(9), out: FunctionPointer(9)},
	}
	for _, tcase := range testcases {
		val, err := ToValue(tcase.in)
		require.NoError(t, err)
		assert.Equal(t, tcase.out, val)
	}

	_, err := ToValue(make(chan int))
	assert.Error(t, err)
	_, err = ToValue([]any{1, make(chan int)})
	assert.Error(t, err)
	assert.Panics(t, func() { MustValue(struct{ A int }{}) })
}

func TestToValueCollections(t *testing.T) {
	t.Parallel()
	val, err := ToValue(map[string]any{
		"xs":   []any{int64(1), int64(2)},
		"name": "mx",
	})
	require.NoError(t, err)
	tbl, ok := val.AsTable()
	require.True(t, ok)
	assert.True(t, tbl.Equal(dict("xs", list(1, 2), "name", "mx")))

	val, err = ToValue([]map[string]any{{"x": int64(1)}, {"x": int64(2)}})
	require.NoError(t, err)
	assert.True(t, val.Equal(TableValue(list(dict("x", 1), dict("x", 2)))))

	val, err = ToValue([]Value{MustValue(1)})
	require.NoError(t, err)
	assert.True(t, val.Equal(TableValue(list(1))))
}

func TestToPrimitive(t *testing.T) {
	t.Parallel()
	prim, err := ToPrimitive(MustValue("k"))
	require.NoError(t, err)
	assert.Equal(t, Str("k"), prim)
	_, err = ToPrimitive(TableValue(nil))
	assert.Error(t, err)
}

func TestFromValue(t *testing.T) {
	t.Parallel()
	f, ok := FromValue[float64](MustValue(1.5))
	assert.True(t, ok)
	assert.InDelta(t, 1.5, f, 0)

	f32, ok := FromValue[float32](MustValue(2))
	assert.True(t, ok)
	assert.InDelta(t, float32(2), f32, 0)

	i, ok := FromValue[int](MustValue(3))
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = FromValue[int](MustValue(3.5))
	assert.False(t, ok, "fractional numbers are not integers")
	_, ok = FromValue[uint8](MustValue(-1))
	assert.False(t, ok, "negative numbers do not fit unsigned types")
	_, ok = FromValue[uint8](MustValue(256))
	assert.False(t, ok)

	s, ok := FromValue[string](MustValue("s"))
	assert.True(t, ok)
	assert.Equal(t, "s", s)
	_, ok = FromValue[string](MustValue(1))
	assert.False(t, ok)

	b, ok := FromValue[bool](MustValue(true))
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = FromValue[struct{}](NilValue())
	assert.True(t, ok)
	_, ok = FromValue[struct{}](MustValue(0))
	assert.False(t, ok)

	tbl, ok := FromValue[*Table](TableValue(list(1)))
	assert.True(t, ok)
	assert.Equal(t, 1, tbl.Len())

	native := &testNative{name: "n"}
	got, ok := FromValue[Native](NativeValue(native))
	assert.True(t, ok)
	assert.Same(t, native, got)

	v, ok := FromValue[Value](FunctionPointer(1))
	assert.True(t, ok)
	assert.Equal(t, FunctionPointer(1), v)

	n, ok := FromValue[Number](MustValue(7))
	assert.True(t, ok)
	assert.Equal(t, Number(7), n)

	p, ok := FromValue[Primitive](MustValue("p"))
	assert.True(t, ok)
	assert.Equal(t, Str("p"), p)
}

func TestToVars(t *testing.T) {
	t.Parallel()
	vars := ToVars(dict("a", 1, 0, "skipped", "b", nil))
	assert.Equal(t, map[string]Value{"a": MustValue(1)}, vars)
	assert.Equal(t, []string{"a", "x"}, SortedNames(map[string]Value{"x": NilValue(), "a": NilValue()}))
}
