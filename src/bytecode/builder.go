package bytecode

import (
	"fmt"

	"github.com/tanema/mx/src/types"
)

type (
	// Builder assembles a Program. Jumps and function pointers may refer to
	// labels that are defined later, they are resolved by Build.
	Builder struct {
		code   []Instruction
		labels map[string]int
		fixups []fixup
	}
	fixup struct {
		pc    int
		label string
	}
)

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{labels: map[string]int{}}
}

// PC is the address the next emitted instruction will have.
func (b *Builder) PC() int {
	return len(b.code)
}

// Emit appends instructions as they are.
func (b *Builder) Emit(insts ...Instruction) *Builder {
	b.code = append(b.code, insts...)
	return b
}

// Label names the address of the next emitted instruction.
func (b *Builder) Label(name string) error {
	if _, exists := b.labels[name]; exists {
		return fmt.Errorf("label %q defined twice", name)
	}
	b.labels[name] = b.PC()
	return nil
}

// EmitTo appends a jump or PUSHFUNCTION whose operand is the address of label.
// Jumps get a relative offset, PUSHFUNCTION the absolute address.
func (b *Builder) EmitTo(op Op, label string) *Builder {
	b.fixups = append(b.fixups, fixup{pc: b.PC(), label: label})
	return b.Emit(Instruction{Op: op})
}

// Function emits a function body bound to a local called name. The emitted
// code binds the name to a pointer at the body and jumps over the body so that
// it only runs when called.
func (b *Builder) Function(name string, body func(*Builder)) *Builder {
	start := b.PC()
	b.Emit(
		PushPrimitive(types.Str(name)),
		PushFunction(start+4),
		StoreName(),
		Jump(0),
	)
	body(b)
	b.code[start+3].A = b.PC() - (start + 3)
	return b
}

// Build resolves labels and returns the program.
func (b *Builder) Build(name string) (*Program, error) {
	code := make([]Instruction, len(b.code))
	copy(code, b.code)
	for _, fix := range b.fixups {
		addr, ok := b.labels[fix.label]
		if !ok {
			return nil, fmt.Errorf("undefined label %q at %v", fix.label, fix.pc)
		}
		if code[fix.pc].IsJump() {
			code[fix.pc].A = addr - fix.pc
		} else {
			code[fix.pc].A = addr
		}
	}
	return NewProgram(name, code...), nil
}
