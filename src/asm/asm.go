// Package asm reads textual instruction listings into programs. The format is
// the one printed by bytecode.Program.String, one instruction per line:
//
//	; comments run to the end of the line
//	start:                       ; labels name the next instruction
//	PUSHPRIMITIVE   "x"          ; constants are nil, booleans, numbers or Go strings
//	JUMP            @start       ; jumps and PUSHFUNCTION may target a label
//	BINARYOP        +
//	STOREFUNCTIONARGS true 2
//
// Listing headers and leading instruction indexes are ignored so a printed
// program can be read back.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/types"
)

// Parse reads a listing from src. name is used for the program and in errors.
func Parse(name string, src io.Reader) (*bytecode.Program, error) {
	b := bytecode.NewBuilder()
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := parseLine(b, scanner.Text()); err != nil {
			return nil, fmt.Errorf("%v:%v: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	prog, err := b.Build(name)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	return prog, nil
}

// String is Parse for listings held in memory.
func String(name, src string) (*bytecode.Program, error) {
	return Parse(name, strings.NewReader(src))
}

func parseLine(b *bytecode.Builder, line string) error {
	line = strings.TrimSpace(stripComment(line))
	if line == "" || strings.HasPrefix(line, "program ") {
		return nil
	}
	for {
		first, rest := cut(line)
		if label, isLabel := strings.CutSuffix(first, ":"); isLabel {
			if !isIdent(label) {
				return fmt.Errorf("invalid label %q", label)
			} else if err := b.Label(label); err != nil {
				return err
			}
			line = rest
		} else if isIndex(first) {
			line = rest
		} else {
			break
		}
		if line == "" {
			return nil
		}
	}
	opName, operands := cut(line)
	op, ok := bytecode.ParseOp(strings.ToUpper(opName))
	if !ok {
		return fmt.Errorf("unknown instruction %q", opName)
	}
	inst := bytecode.Instruction{Op: op}
	switch bytecode.Kind(op) {
	case bytecode.TypeNone:
		if operands != "" {
			return fmt.Errorf("%v takes no operands", op)
		}
	case bytecode.TypeA:
		if label, isRef := strings.CutPrefix(operands, "@"); isRef {
			if op != bytecode.PUSHFUNCTION && !inst.IsJump() {
				return fmt.Errorf("%v cannot target a label", op)
			} else if !isIdent(label) {
				return fmt.Errorf("invalid label %q", label)
			}
			b.EmitTo(op, label)
			return nil
		}
		a, err := parseInt(operands)
		if err != nil {
			return fmt.Errorf("%v: %w", op, err)
		}
		inst.A = a
	case bytecode.TypeK:
		k, err := parsePrimitive(operands)
		if err != nil {
			return fmt.Errorf("%v: %w", op, err)
		}
		inst.K = k
	case bytecode.TypeU:
		unary, ok := bytecode.ParseUnary(operands)
		if !ok {
			return fmt.Errorf("unknown unary operator %q", operands)
		}
		inst.Unary = unary
	case bytecode.TypeB:
		binary, ok := bytecode.ParseBinary(operands)
		if !ok {
			return fmt.Errorf("unknown binary operator %q", operands)
		}
		inst.Binary = binary
	case bytecode.TypeFA:
		flag, count := cut(operands)
		bindSelf, err := strconv.ParseBool(flag)
		if err != nil {
			return fmt.Errorf("%v: invalid flag %q", op, flag)
		}
		a, err := parseInt(count)
		if err != nil {
			return fmt.Errorf("%v: %w", op, err)
		}
		inst.Flag, inst.A = bindSelf, a
	}
	b.Emit(inst)
	return nil
}

func parseInt(src string) (int, error) {
	if src == "" {
		return 0, fmt.Errorf("missing operand")
	}
	a, err := strconv.Atoi(src)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", src)
	}
	return a, nil
}

func parsePrimitive(src string) (types.Primitive, error) {
	switch src {
	case "":
		return types.Nil(), fmt.Errorf("missing constant")
	case "nil":
		return types.Nil(), nil
	case "true":
		return types.Bool(true), nil
	case "false":
		return types.Bool(false), nil
	}
	if src[0] == '"' || src[0] == '`' {
		str, err := strconv.Unquote(src)
		if err != nil {
			return types.Nil(), fmt.Errorf("invalid string %v", src)
		}
		return types.Str(str), nil
	}
	n, err := strconv.ParseFloat(src, 64)
	if err != nil {
		return types.Nil(), fmt.Errorf("invalid constant %q", src)
	}
	return types.Num(n), nil
}

// stripComment drops everything after a ; that is not inside a string.
func stripComment(line string) string {
	var quote rune
	escaped := false
	for i, ch := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if ch == '\\' && quote == '"' {
				escaped = true
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '`':
			quote = ch
		case ch == ';':
			return line[:i]
		}
	}
	return line
}

func cut(line string) (string, string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

func isIndex(field string) bool {
	_, err := strconv.ParseUint(field, 10, 64)
	return err == nil
}

func isIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if ch != '_' && !unicode.IsLetter(ch) && (i == 0 || !unicode.IsDigit(ch)) {
			return false
		}
	}
	return true
}
