package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

func TestString(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		pattern string
		vals    []any
		output  string
	}{
		{pattern: "%%", output: "%"},
		{pattern: "%d", vals: []any{42}, output: "42"},
		{pattern: "%i", vals: []any{42}, output: "42"},
		{pattern: "%u", vals: []any{42}, output: "42"},
		{pattern: "%o", vals: []any{42}, output: "52"},
		{pattern: "%x", vals: []any{42}, output: "2a"},
		{pattern: "%X", vals: []any{42}, output: "2A"},
		{pattern: "%c", vals: []any{42}, output: "*"},
		{pattern: "%5.1f", vals: []any{3.14159}, output: "  3.1"},
		{pattern: "%e", vals: []any{42}, output: "4.200000e+01"},
		{pattern: "%g", vals: []any{42}, output: "42"},
		{pattern: "%s", vals: []any{"test this"}, output: "test this"},
		{pattern: "%s", vals: []any{nil}, output: "nil"},
		{pattern: "%s", vals: []any{1.5}, output: "1.5"},
		{pattern: "%q", vals: []any{"a"}, output: `"a"`},
		{pattern: "%+08d", vals: []any{31501}, output: "+0031501"},
		{pattern: "%#x", vals: []any{100}, output: "0x64"},
		{pattern: "%#-17X", vals: []any{100}, output: "0X64             "},
		{pattern: "%013i", vals: []any{-100}, output: "-000000000100"},
		{pattern: "%.u", vals: []any{0}, output: "0"},
		{pattern: "%-5c", vals: []any{97}, output: "a    "},
		{pattern: "%.0s", vals: []any{"alo"}, output: ""},
		{pattern: "x=%d y=%s", vals: []any{1, "b"}, output: "x=1 y=b"},
	}

	for _, tc := range testcases {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			out, err := String(tc.pattern, values(t, tc.vals)...)
			require.NoError(t, err)
			assert.Equal(t, tc.output, out)
		})
	}
}

func TestStringErrors(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		pattern string
		vals    []any
		err     error
	}{
		{pattern: "%d", vals: []any{1.5}, err: lerrors.ErrInvalidArgumentType},
		{pattern: "%d", vals: []any{"1"}, err: lerrors.ErrInvalidArgumentType},
		{pattern: "%f", vals: []any{true}, err: lerrors.ErrInvalidArgumentType},
		{pattern: "%d", err: lerrors.ErrFunctionArgumentNotProvided},
		{pattern: "%z", vals: []any{1}, err: lerrors.ErrInvalidArgumentType},
		{pattern: "%", err: lerrors.ErrInvalidArgumentType},
		{pattern: "plain", vals: []any{1}, err: lerrors.ErrInvalidArgumentType},
	}

	for _, tc := range testcases {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			_, err := String(tc.pattern, values(t, tc.vals)...)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func values(t *testing.T, in []any) []types.Value {
	t.Helper()
	vals := make([]types.Value, len(in))
	for i, v := range in {
		val, err := types.ToValue(v)
		require.NoError(t, err)
		vals[i] = val
	}
	return vals
}
