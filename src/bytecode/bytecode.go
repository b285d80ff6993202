// Package bytecode defines the instruction set evaluated by the runtime, the
// read-only Program that holds a sequence of instructions, and the helpers to
// build, list and serialize programs.
package bytecode

import (
	"fmt"
	"strconv"

	"github.com/tanema/mx/src/types"
)

type (
	// Op is the descriptor of which kind of instruction each bytecode is.
	Op uint8
	// Type is a descriptor of what operands an instruction has.
	Type string
	// UnaryOp is the operator applied by UNARYOP.
	UnaryOp uint8
	// BinaryOp is the operator applied by BINARYOP.
	BinaryOp uint8
	// Instruction is a single decoded instruction. Only the operands that the
	// Op's Type names are meaningful.
	Instruction struct {
		Op     Op
		A      int
		Flag   bool
		K      types.Primitive
		Unary  UnaryOp
		Binary BinaryOp
	}
)

const (
	// TypeNone is an instruction without operands.
	TypeNone Type = "i"
	// TypeA is an instruction with an integer count, offset or address.
	TypeA Type = "iA"
	// TypeK is an instruction with a constant primitive.
	TypeK Type = "iK"
	// TypeU is an instruction with a unary operator.
	TypeU Type = "iU"
	// TypeB is an instruction with a binary operator.
	TypeB Type = "iB"
	// TypeFA is an instruction with a flag and an integer count.
	TypeFA Type = "iFA"
)

// The stack effects are written with the top of the stack rightmost.
const (
	// NOP does nothing.
	NOP Op = iota
	// COPY duplicates the top of the stack. v -> v, v.
	COPY
	// SWAP exchanges the two top values. a, b -> b, a.
	SWAP
	// POP discards the top of the stack. v ->.
	POP
	// UNARYOP applies a unary operator. v -> op v.
	UNARYOP
	// BINARYOP applies a binary operator. a, b -> a op b.
	BINARYOP
	// STORENAME binds a local. name, v ->.
	STORENAME
	// STOREPRIMITIVE binds a local to the constant K. name ->.
	STOREPRIMITIVE
	// PUSHNAME looks a name up in locals then globals. name -> v.
	PUSHNAME
	// PUSHPRIMITIVE pushes the constant K. -> K.
	PUSHPRIMITIVE
	// TABLEGET indexes a table, absent keys give nil. t, k -> t[k].
	TABLEGET
	// TABLELISTBUILD builds a list from A values in push order. v0..vA-1 -> t.
	TABLELISTBUILD
	// TABLEDICTBUILD builds a table from A pairs, the last pair for a key wins. k0, v0.. -> t.
	TABLEDICTBUILD
	// TABLEMERGE merges two tables, the top one wins. a, b -> merged.
	TABLEMERGE
	// POPJUMPIFTRUE pops a condition and jumps by A if it is truthy. cond ->.
	POPJUMPIFTRUE
	// POPJUMPIFFALSE pops a condition and jumps by A if it is falsy. cond ->.
	POPJUMPIFFALSE
	// JUMP moves the program counter by A.
	JUMP
	// PUSHFUNCTION pushes a function pointer to the absolute address A. -> fn.
	PUSHFUNCTION
	// STOREFUNCTIONARGS binds A parameters, and self if Flag is set, from an
	// argument table. args, named0, pos0.. ->.
	STOREFUNCTIONARGS
	// CALL calls a function with an argument table. args, fn -> result.
	CALL
	// RETURN pops a frame and hands the top of the stack to the caller. v ->.
	RETURN
)

const (
	// Plus is unary `+val`.
	Plus UnaryOp = iota
	// Minus is unary `-val`.
	Minus
	// Not is `!val`.
	Not
)

const (
	// Add is `lhs + rhs`.
	Add BinaryOp = iota
	// Sub is `lhs - rhs`.
	Sub
	// Mul is `lhs * rhs`.
	Mul
	// Div is `lhs / rhs`.
	Div
	// Mod is `lhs % rhs`.
	Mod
	// IntegerDiv is `lhs // rhs`.
	IntegerDiv
	// Pow is `lhs ^ rhs`.
	Pow
	// Eq is `lhs == rhs`.
	Eq
	// Ne is `lhs != rhs`.
	Ne
	// Lt is `lhs < rhs`.
	Lt
	// Lte is `lhs <= rhs`.
	Lte
	// Gt is `lhs > rhs`.
	Gt
	// Gte is `lhs >= rhs`.
	Gte
	// And is `lhs && rhs`.
	And
	// Or is `lhs || rhs`.
	Or
	// Coalesce is `lhs ?? rhs`.
	Coalesce
)

var opcodeToString = map[Op]string{
	NOP:               "NOP",
	COPY:              "COPY",
	SWAP:              "SWAP",
	POP:               "POP",
	UNARYOP:           "UNARYOP",
	BINARYOP:          "BINARYOP",
	STORENAME:         "STORENAME",
	STOREPRIMITIVE:    "STOREPRIMITIVE",
	PUSHNAME:          "PUSHNAME",
	PUSHPRIMITIVE:     "PUSHPRIMITIVE",
	TABLEGET:          "TABLEGET",
	TABLELISTBUILD:    "TABLELISTBUILD",
	TABLEDICTBUILD:    "TABLEDICTBUILD",
	TABLEMERGE:        "TABLEMERGE",
	POPJUMPIFTRUE:     "POPJUMPIFTRUE",
	POPJUMPIFFALSE:    "POPJUMPIFFALSE",
	JUMP:              "JUMP",
	PUSHFUNCTION:      "PUSHFUNCTION",
	STOREFUNCTIONARGS: "STOREFUNCTIONARGS",
	CALL:              "CALL",
	RETURN:            "RETURN",
}

var unaryToString = map[UnaryOp]string{
	Plus:  "+",
	Minus: "-",
	Not:   "!",
}

var binaryToString = map[BinaryOp]string{
	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	Div:        "/",
	Mod:        "%",
	IntegerDiv: "//",
	Pow:        "^",
	Eq:         "==",
	Ne:         "!=",
	Lt:         "<",
	Lte:        "<=",
	Gt:         ">",
	Gte:        ">=",
	And:        "&&",
	Or:         "||",
	Coalesce:   "??",
}

// Nop creates a NOP instruction.
func Nop() Instruction { return Instruction{Op: NOP} }

// Copy creates a COPY instruction.
func Copy() Instruction { return Instruction{Op: COPY} }

// Swap creates a SWAP instruction.
func Swap() Instruction { return Instruction{Op: SWAP} }

// Pop creates a POP instruction.
func Pop() Instruction { return Instruction{Op: POP} }

// Unary creates a UNARYOP instruction.
func Unary(op UnaryOp) Instruction { return Instruction{Op: UNARYOP, Unary: op} }

// Binary creates a BINARYOP instruction.
func Binary(op BinaryOp) Instruction { return Instruction{Op: BINARYOP, Binary: op} }

// StoreName creates a STORENAME instruction.
func StoreName() Instruction { return Instruction{Op: STORENAME} }

// StorePrimitive creates a STOREPRIMITIVE instruction for the constant k.
func StorePrimitive(k types.Primitive) Instruction { return Instruction{Op: STOREPRIMITIVE, K: k} }

// PushName creates a PUSHNAME instruction.
func PushName() Instruction { return Instruction{Op: PUSHNAME} }

// PushPrimitive creates a PUSHPRIMITIVE instruction for the constant k.
func PushPrimitive(k types.Primitive) Instruction { return Instruction{Op: PUSHPRIMITIVE, K: k} }

// TableGet creates a TABLEGET instruction.
func TableGet() Instruction { return Instruction{Op: TABLEGET} }

// TableListBuild creates a TABLELISTBUILD instruction for n values.
func TableListBuild(n int) Instruction { return Instruction{Op: TABLELISTBUILD, A: n} }

// TableDictBuild creates a TABLEDICTBUILD instruction for n key value pairs.
func TableDictBuild(n int) Instruction { return Instruction{Op: TABLEDICTBUILD, A: n} }

// TableMerge creates a TABLEMERGE instruction.
func TableMerge() Instruction { return Instruction{Op: TABLEMERGE} }

// PopJumpIfTrue creates a POPJUMPIFTRUE instruction with a relative offset.
func PopJumpIfTrue(offset int) Instruction { return Instruction{Op: POPJUMPIFTRUE, A: offset} }

// PopJumpIfFalse creates a POPJUMPIFFALSE instruction with a relative offset.
func PopJumpIfFalse(offset int) Instruction { return Instruction{Op: POPJUMPIFFALSE, A: offset} }

// Jump creates a JUMP instruction with a relative offset.
func Jump(offset int) Instruction { return Instruction{Op: JUMP, A: offset} }

// PushFunction creates a PUSHFUNCTION instruction for the absolute address addr.
func PushFunction(addr int) Instruction { return Instruction{Op: PUSHFUNCTION, A: addr} }

// StoreFunctionArgs creates a STOREFUNCTIONARGS instruction for n parameters.
func StoreFunctionArgs(bindSelf bool, n int) Instruction {
	return Instruction{Op: STOREFUNCTIONARGS, Flag: bindSelf, A: n}
}

// Call creates a CALL instruction.
func Call() Instruction { return Instruction{Op: CALL} }

// Return creates a RETURN instruction.
func Return() Instruction { return Instruction{Op: RETURN} }

func (op Op) String() string {
	if name, ok := opcodeToString[op]; ok {
		return name
	}
	return "UNDEFINED"
}

func (op UnaryOp) String() string {
	if name, ok := unaryToString[op]; ok {
		return name
	}
	return "?"
}

func (op BinaryOp) String() string {
	if name, ok := binaryToString[op]; ok {
		return name
	}
	return "?"
}

// ParseOp looks an opcode up by its listing name.
func ParseOp(name string) (Op, bool) {
	for op, opName := range opcodeToString {
		if opName == name {
			return op, true
		}
	}
	return 0, false
}

// ParseUnary looks a unary operator up by its symbol.
func ParseUnary(symbol string) (UnaryOp, bool) {
	for op, opSymbol := range unaryToString {
		if opSymbol == symbol {
			return op, true
		}
	}
	return 0, false
}

// ParseBinary looks a binary operator up by its symbol.
func ParseBinary(symbol string) (BinaryOp, bool) {
	for op, opSymbol := range binaryToString {
		if opSymbol == symbol {
			return op, true
		}
	}
	return 0, false
}

// Kind will return which operands an op uses.
func Kind(op Op) Type {
	switch op {
	case TABLELISTBUILD, TABLEDICTBUILD, POPJUMPIFTRUE, POPJUMPIFFALSE, JUMP, PUSHFUNCTION:
		return TypeA
	case STOREPRIMITIVE, PUSHPRIMITIVE:
		return TypeK
	case UNARYOP:
		return TypeU
	case BINARYOP:
		return TypeB
	case STOREFUNCTIONARGS:
		return TypeFA
	default:
		return TypeNone
	}
}

// IsJump reports whether the instruction moves the program counter by a
// relative offset.
func (inst Instruction) IsJump() bool {
	switch inst.Op {
	case JUMP, POPJUMPIFTRUE, POPJUMPIFFALSE:
		return true
	default:
		return false
	}
}

// String will format an instruction to be understandable. The output can be
// read back by the asm package.
func (inst Instruction) String() string {
	switch Kind(inst.Op) {
	case TypeA:
		return fmt.Sprintf("%-18v %v", inst.Op, inst.A)
	case TypeK:
		return fmt.Sprintf("%-18v %#v", inst.Op, inst.K)
	case TypeU:
		return fmt.Sprintf("%-18v %v", inst.Op, inst.Unary)
	case TypeB:
		return fmt.Sprintf("%-18v %v", inst.Op, inst.Binary)
	case TypeFA:
		return fmt.Sprintf("%-18v %-5v %v", inst.Op, strconv.FormatBool(inst.Flag), inst.A)
	default:
		return inst.Op.String()
	}
}
