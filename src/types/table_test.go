package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dict(kv ...any) *Table {
	t := NewTable()
	for i := 0; i < len(kv); i += 2 {
		key, err := ToPrimitive(kv[i])
		if err != nil {
			panic(err)
		}
		t.Set(key, MustValue(kv[i+1]))
	}
	return t
}

func list(vals ...any) *Table {
	t := NewTable()
	for i, val := range vals {
		t.Set(Num(i), MustValue(val))
	}
	return t
}

func TestTableSetNilIsAbsent(t *testing.T) {
	t.Parallel()
	tbl := dict("a", 1, "b", 2)
	tbl.Set(Str("a"), NilValue())

	val, ok := tbl.Get(Str("a"))
	assert.True(t, ok, "a literal nil binding is still reported by Get")
	assert.True(t, val.IsNil())
	_, ok = tbl.Get(Str("missing"))
	assert.False(t, ok)

	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []Primitive{Str("b")}, tbl.Keys())
	assert.True(t, tbl.Equal(dict("b", 2)))
	assert.True(t, dict("b", 2).Equal(tbl))

	slot := tbl.GetMut(Str("a"))
	*slot = MustValue(3)
	assert.Equal(t, MustValue(3), tbl.Index(Str("a")))
}

func TestTableGetMut(t *testing.T) {
	t.Parallel()
	tbl := NewTable()
	slot := tbl.GetMut(Str("x"))
	assert.True(t, slot.IsNil())
	val, ok := tbl.Get(Str("x"))
	assert.True(t, ok, "GetMut binds missing keys to nil")
	assert.True(t, val.IsNil())
	assert.Equal(t, 0, tbl.Len())

	*slot = MustValue("set")
	assert.Equal(t, MustValue("set"), tbl.Index(Str("x")))

	var zero Table
	*zero.GetMut(Num(0)) = MustValue(1)
	assert.Equal(t, 1, zero.ListLen())
}

func TestTableRemoveAndCompact(t *testing.T) {
	t.Parallel()
	tbl := dict("a", 1, "b", nil, "c", nil)
	val, ok := tbl.Remove(Str("a"))
	assert.True(t, ok)
	assert.Equal(t, MustValue(1), val)
	_, ok = tbl.Remove(Str("a"))
	assert.False(t, ok)

	tbl.Compact()
	_, ok = tbl.Get(Str("b"))
	assert.False(t, ok)
	assert.Empty(t, tbl.hashtable)
}

func TestTableList(t *testing.T) {
	t.Parallel()
	tbl := list(true, false, 12, nil, "never seen")
	assert.Equal(t, 3, tbl.ListLen())
	assert.Equal(t, []Value{MustValue(true), MustValue(false), MustValue(12)}, tbl.List())
	assert.Equal(t, 4, tbl.Len())

	gap := dict(1, "one")
	assert.Equal(t, 0, gap.ListLen())
	assert.Empty(t, gap.List())
}

func TestTableAll(t *testing.T) {
	t.Parallel()
	tbl := dict("b", 2, "a", 1, 0, "zero", "gone", nil)
	keys := []Primitive{}
	vals := []Value{}
	for key, val := range tbl.All() {
		keys = append(keys, key)
		vals = append(vals, val)
	}
	assert.Equal(t, []Primitive{Num(0), Str("a"), Str("b")}, keys)
	assert.Equal(t, []Value{MustValue("zero"), MustValue(1), MustValue(2)}, vals)

	count := 0
	for range tbl.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestTableEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, dict("a", 1, "b", nil).Equal(dict("a", 1)))
	assert.False(t, dict("a", 1).Equal(dict("a", 1, "b", 2)))
	assert.False(t, dict("a", 1, "b", 2).Equal(dict("a", 1)))
	assert.False(t, dict("a", 1).Equal(dict("a", 2)))
	assert.True(t, dict("t", list(1, 2)).Equal(dict("t", list(1, 2))))
	assert.True(t, NewTable().Equal(dict("x", nil)))
	assert.False(t, NewTable().Equal(nil))
}

func TestTableMerge(t *testing.T) {
	t.Parallel()
	a := dict("a", 1, "b", 2)
	b := dict("b", 3, "c", 4, "a", nil)
	merged := a.Merge(b)
	assert.True(t, merged.Equal(dict("a", 1, "b", 3, "c", 4)), merged.String())
	assert.True(t, a.Equal(dict("a", 1, "b", 2)), "merge must not change its receiver")
}

func TestTableClone(t *testing.T) {
	t.Parallel()
	inner := list(1, 2)
	outer := dict("inner", inner)
	clone := outer.Clone()
	inner.Set(Num(0), MustValue(99))

	got, ok := clone.Index(Str("inner")).AsTable()
	require.True(t, ok)
	assert.True(t, got.Equal(list(1, 2)))
}

func TestTableTruthy(t *testing.T) {
	t.Parallel()
	assert.False(t, NewTable().Truthy())
	assert.False(t, dict("a", nil).Truthy())
	assert.True(t, dict("a", false).Truthy())
}

func TestTableString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "{ }", NewTable().String())
	assert.Equal(t, `{ 1, "two", [true] = 3, name = "mx" }`, dict(0, 1, 1, "two", "name", "mx", true, 3).String())
	assert.Equal(t, `{ [5] = 1 }`, dict(5, 1).String())
}

func TestNewDict(t *testing.T) {
	t.Parallel()
	tbl := NewDict(Pair{Key: Str("a"), Val: MustValue(1)}, Pair{Key: Str("a"), Val: MustValue(2)})
	assert.Equal(t, MustValue(2), tbl.Index(Str("a")))
	assert.True(t, NewList(MustValue(1), MustValue(2)).Equal(list(1, 2)))
}
