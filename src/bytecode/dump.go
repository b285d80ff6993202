package bytecode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/types"
)

type (
	image struct {
		Version string            `cbor:"1,keyasint"`
		Format  int               `cbor:"2,keyasint"`
		Name    string            `cbor:"3,keyasint,omitempty"`
		Code    []wireInstruction `cbor:"4,keyasint"`
	}
	wireInstruction struct {
		Op       Op             `cbor:"1,keyasint"`
		A        int            `cbor:"2,keyasint,omitempty"`
		Flag     bool           `cbor:"3,keyasint,omitempty"`
		K        *wirePrimitive `cbor:"4,keyasint,omitempty"`
		Operator uint8          `cbor:"5,keyasint,omitempty"`
	}
	wirePrimitive struct {
		Type types.Type `cbor:"1,keyasint"`
		Bool bool       `cbor:"2,keyasint,omitempty"`
		Num  float64    `cbor:"3,keyasint,omitempty"`
		Str  string     `cbor:"4,keyasint,omitempty"`
	}
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Dump will serialize the program into an image that starts with the mx
// signature followed by the CBOR encoded instructions.
func (p *Program) Dump() ([]byte, error) {
	img := image{
		Version: conf.VERSION,
		Format:  conf.FORMAT,
		Name:    p.Name,
		Code:    make([]wireInstruction, len(p.Code)),
	}
	for i, inst := range p.Code {
		img.Code[i] = toWire(inst)
	}
	body, err := cborEncMode.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("bytecode: marshal program: %w", err)
	}
	return append([]byte(conf.SIGNATURE), body...), nil
}

// Undump will deserialize an image written by Dump.
func Undump(src io.Reader) (*Program, error) {
	signature := make([]byte, len(conf.SIGNATURE))
	if _, err := io.ReadFull(src, signature); err != nil {
		return nil, fmt.Errorf("bytecode: read signature: %w", err)
	} else if string(signature) != conf.SIGNATURE {
		return nil, errors.New("bytecode: invalid signature")
	}
	var img image
	if err := cbor.NewDecoder(src).Decode(&img); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	} else if img.Format != conf.FORMAT {
		return nil, fmt.Errorf("bytecode: unsupported image format %v", img.Format)
	}
	code := make([]Instruction, len(img.Code))
	for i, wire := range img.Code {
		inst, err := fromWire(wire)
		if err != nil {
			return nil, fmt.Errorf("bytecode: instruction %v: %w", i, err)
		}
		code[i] = inst
	}
	return NewProgram(img.Name, code...), nil
}

// HasSignature sniffs src for the image signature and rewinds it so that it
// can be read again from the start.
func HasSignature(src io.ReadSeeker) bool {
	prefix := make([]byte, len(conf.SIGNATURE))
	n, _ := io.ReadFull(src, prefix)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return false
	}
	return bytes.Equal(prefix[:n], []byte(conf.SIGNATURE))
}

func toWire(inst Instruction) wireInstruction {
	wire := wireInstruction{Op: inst.Op, A: inst.A, Flag: inst.Flag}
	switch Kind(inst.Op) {
	case TypeK:
		wire.K = primitiveToWire(inst.K)
	case TypeU:
		wire.Operator = uint8(inst.Unary)
	case TypeB:
		wire.Operator = uint8(inst.Binary)
	}
	return wire
}

func fromWire(wire wireInstruction) (Instruction, error) {
	if _, ok := opcodeToString[wire.Op]; !ok {
		return Instruction{}, fmt.Errorf("unknown opcode %v", uint8(wire.Op))
	}
	inst := Instruction{Op: wire.Op, A: wire.A, Flag: wire.Flag}
	switch Kind(wire.Op) {
	case TypeK:
		if wire.K == nil {
			return inst, fmt.Errorf("%v without constant", wire.Op)
		}
		k, err := primitiveFromWire(*wire.K)
		if err != nil {
			return inst, err
		}
		inst.K = k
	case TypeU:
		inst.Unary = UnaryOp(wire.Operator)
		if _, ok := unaryToString[inst.Unary]; !ok {
			return inst, fmt.Errorf("unknown unary operator %v", wire.Operator)
		}
	case TypeB:
		inst.Binary = BinaryOp(wire.Operator)
		if _, ok := binaryToString[inst.Binary]; !ok {
			return inst, fmt.Errorf("unknown binary operator %v", wire.Operator)
		}
	}
	return inst, nil
}

func primitiveToWire(k types.Primitive) *wirePrimitive {
	wire := &wirePrimitive{Type: k.Type()}
	switch k.Type() {
	case types.TypeBool:
		wire.Bool, _ = k.AsBool()
	case types.TypeNumber:
		n, _ := k.AsNumber()
		wire.Num = float64(n)
	case types.TypeString:
		wire.Str, _ = k.AsString()
	}
	return wire
}

func primitiveFromWire(wire wirePrimitive) (types.Primitive, error) {
	switch wire.Type {
	case types.TypeNil:
		return types.Nil(), nil
	case types.TypeBool:
		return types.Bool(wire.Bool), nil
	case types.TypeNumber:
		return types.Num(wire.Num), nil
	case types.TypeString:
		return types.Str(wire.Str), nil
	default:
		return types.Nil(), fmt.Errorf("constant of type %v is not a primitive", wire.Type)
	}
}
