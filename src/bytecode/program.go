package bytecode

import (
	"bytes"
	"fmt"
)

// Program is a finished instruction sequence. It holds no execution state and
// is never modified by the runtime, so many executions may share one Program.
type Program struct {
	Name string
	Code []Instruction
}

// NewProgram creates a program from a list of instructions.
func NewProgram(name string, code ...Instruction) *Program {
	return &Program{Name: name, Code: code}
}

// Len is the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Code)
}

// At returns the instruction at pc if pc addresses one.
func (p *Program) At(pc int) (Instruction, bool) {
	if pc < 0 || pc >= len(p.Code) {
		return Instruction{}, false
	}
	return p.Code[pc], true
}

// String lists the program one instruction per line.
func (p *Program) String() string {
	var buf bytes.Buffer
	name := p.Name
	if name == "" {
		name = "<main>"
	}
	fmt.Fprintf(&buf, "program %v (%v instructions)\n", name, len(p.Code))
	for pc, inst := range p.Code {
		fmt.Fprintf(&buf, "\t%-4v %v\n", pc, inst)
	}
	return buf.String()
}
