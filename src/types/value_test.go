package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNative struct{ name string }

func (n *testNative) Name() string { return n.name }

func (n *testNative) Invoke(args *Table) (Value, error) { return args.Index(Num(0)), nil }

func TestValueTruthy(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		desc string
		in   Value
		out  bool
	}{
		{desc: "nil", in: NilValue(), out: false},
		{desc: "false", in: MustValue(false), out: false},
		{desc: "true", in: MustValue(true), out: true},
		{desc: "zero", in: MustValue(0), out: false},
		{desc: "negative zero", in: MustValue(math.Copysign(0, -1)), out: false},
		{desc: "nan", in: MustValue(math.NaN()), out: true},
		{desc: "number", in: MustValue(-3), out: true},
		{desc: "empty string", in: MustValue(""), out: false},
		{desc: "string", in: MustValue("x"), out: true},
		{desc: "empty table", in: TableValue(nil), out: false},
		{desc: "nil only table", in: TableValue(dict("a", nil)), out: false},
		{desc: "table", in: TableValue(list(0)), out: true},
		{desc: "function pointer", in: FunctionPointer(0), out: true},
		{desc: "native", in: NativeValue(&testNative{name: "id"}), out: true},
	}
	for _, tcase := range testcases {
		t.Run(tcase.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tcase.out, tcase.in.Truthy())
		})
	}
}

func TestValueType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, TypeNil, NilValue().Type())
	assert.Equal(t, TypeString, MustValue("s").Type())
	assert.Equal(t, TypeTable, TableValue(nil).Type())
	assert.Equal(t, TypeFunction, FunctionPointer(3).Type())
	assert.Equal(t, TypeFunction, NativeValue(&testNative{}).Type())
	assert.True(t, NativeValue(&testNative{}).IsFunction())
	assert.True(t, NativeValue(nil).IsNil())
}

func TestValueEqual(t *testing.T) {
	t.Parallel()
	native := &testNative{name: "a"}
	assert.True(t, MustValue(math.NaN()).Equal(MustValue(math.NaN())))
	assert.True(t, MustValue(1).Equal(MustValue(1.0)))
	assert.False(t, MustValue(1).Equal(MustValue("1")))
	assert.True(t, FunctionPointer(2).Equal(FunctionPointer(2)))
	assert.False(t, FunctionPointer(2).Equal(FunctionPointer(3)))
	assert.True(t, NativeValue(native).Equal(NativeValue(native)))
	assert.False(t, NativeValue(native).Equal(NativeValue(&testNative{name: "a"})))
	assert.True(t, TableValue(list(1)).Equal(TableValue(list(1))))
	assert.False(t, TableValue(list(1)).Equal(MustValue(1)))
}

func TestValueClone(t *testing.T) {
	t.Parallel()
	orig := TableValue(list(1, 2))
	clone := orig.Clone()
	tbl, ok := clone.AsTable()
	require.True(t, ok)
	tbl.Set(Num(0), MustValue("changed"))
	origTbl, _ := orig.AsTable()
	assert.Equal(t, MustValue(1), origTbl.Index(Num(0)))
	assert.Equal(t, MustValue(5), MustValue(5).Clone())
}

func TestValueString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "nil", NilValue().String())
	assert.Equal(t, "function:[@4]", FunctionPointer(4).String())
	assert.Equal(t, "function:[id()]", NativeValue(&testNative{name: "id"}).String())
	assert.Equal(t, "{ 1, 2 }", TableValue(list(1, 2)).String())
	assert.Equal(t, `"q"`, MustValue("q").GoString())
}
