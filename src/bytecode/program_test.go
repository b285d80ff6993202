package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/mx/src/types"
)

func TestProgram(t *testing.T) {
	t.Parallel()
	prog := NewProgram("main", PushPrimitive(types.Num(1)), Return())
	assert.Equal(t, 2, prog.Len())

	inst, ok := prog.At(1)
	assert.True(t, ok)
	assert.Equal(t, Return(), inst)
	_, ok = prog.At(2)
	assert.False(t, ok)
	_, ok = prog.At(-1)
	assert.False(t, ok)

	expected := "program main (2 instructions)\n" +
		"\t0    PUSHPRIMITIVE      1\n" +
		"\t1    RETURN\n"
	assert.Equal(t, expected, prog.String())
	assert.Contains(t, NewProgram("").String(), "program <main> (0 instructions)")
}

func TestBuilder(t *testing.T) {
	t.Parallel()
	t.Run("labels", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder()
		require.NoError(t, b.Label("top"))
		b.Emit(PushPrimitive(types.Bool(true)))
		b.EmitTo(POPJUMPIFFALSE, "end")
		b.EmitTo(JUMP, "top")
		b.EmitTo(PUSHFUNCTION, "end")
		require.NoError(t, b.Label("end"))
		b.Emit(Return())

		prog, err := b.Build("loop")
		require.NoError(t, err)
		assert.Equal(t, []Instruction{
			PushPrimitive(types.Bool(true)),
			PopJumpIfFalse(3),
			Jump(-2),
			PushFunction(4),
			Return(),
		}, prog.Code)
	})

	t.Run("duplicate label", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder()
		require.NoError(t, b.Label("a"))
		assert.Error(t, b.Label("a"))
	})

	t.Run("undefined label", func(t *testing.T) {
		t.Parallel()
		_, err := NewBuilder().EmitTo(JUMP, "nowhere").Build("")
		assert.ErrorContains(t, err, `undefined label "nowhere"`)
	})

	t.Run("function", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder().Emit(Nop())
		b.Function("double", func(b *Builder) {
			b.Emit(
				PushPrimitive(types.Str("x")),
				StoreFunctionArgs(false, 1),
				PushPrimitive(types.Str("x")),
				PushName(),
				Copy(),
				Binary(Add),
				Return(),
			)
		})
		prog, err := b.Build("")
		require.NoError(t, err)
		assert.Equal(t, PushPrimitive(types.Str("double")), prog.Code[1])
		assert.Equal(t, PushFunction(5), prog.Code[2])
		assert.Equal(t, StoreName(), prog.Code[3])
		assert.Equal(t, Jump(8), prog.Code[4])
		assert.Equal(t, 12, prog.Len())
	})
}
