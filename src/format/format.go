// Package format renders printf style templates with mx values.
// A format specifier follows the form:
//
//	%[flags][width][.precision]specifier
//
// Flags:
// - - : left justify ensuring width
// - + : always show sign +/-
// - \s : (space) show sign if only -
// - # : prefix 0x for hex variables, prefix 0 for octal
// - 0 : Left pad with 0 instead of space when width is suppied
// Specifiers:
// - d, i: integer
// - u: unsigned integer
// - o: unsigned octal
// - x, X: unsigned hex integer
// - c: character
// - f, F: float
// - e, E: scientific notation (3.9265e+2)
// - g, G: shortest representation of %e or %f
// - a, A: hex float
// - s: string form of any value
// - q: quoted form of any value
// - %%: %
//
// Integer specifiers only accept numbers without a fraction.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

const (
	flagLeftJust  = 0b0000001
	flagShowSign  = 0b0000010
	flagShowMinus = 0b0000100
	flagHash      = 0b0001000
	flagZero      = 0b0010000
	flagHasWidth  = 0b0100000
	flagHasPrec   = 0b1000000
)

// String will format a template with formatting directives, consuming one
// argument per directive.
func String(tmplIn string, args ...types.Value) (string, error) {
	var buf strings.Builder
	argIndex := 0

	tmpl := []rune(tmplIn)
	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		if ch != '%' {
			buf.WriteRune(ch)
			continue
		}

		fmtSpecStart := i
		i++
		if i < len(tmpl) && tmpl[i] == '%' {
			buf.WriteRune('%')
			continue
		}

		var flags uint32
		i, flags = consumeFlags(tmpl, i)
		if i >= len(tmpl) {
			return "", lerrors.New(lerrors.InvalidArgumentType, "format: incomplete directive %q", string(tmpl[fmtSpecStart:]))
		}
		if argIndex >= len(args) {
			return "", lerrors.New(lerrors.FunctionArgumentNotProvided, "format: no value for directive %v", argIndex+1)
		}
		arg := args[argIndex]
		argIndex++

		fmtSpec := string(tmpl[fmtSpecStart:i])
		fmtKind := tmpl[i]
		switch fmtKind {
		case 'c', 'd', 'i', 'u', 'o', 'x', 'X':
			finalval, ok := toInt(arg)
			if !ok {
				return "", lerrors.New(lerrors.InvalidArgumentType, "format: '%c' expects an integer, got %v", fmtKind, arg.GoString())
			}
			switch fmtKind {
			case 'i':
				buf.WriteString(fmt.Sprintf(fmtSpec+"d", finalval))
			case 'u':
				if flags&flagHasPrec != 0 {
					fmtSpec = fmtSpec[:strings.IndexByte(fmtSpec, '.')]
				}
				buf.WriteString(fmt.Sprintf(fmtSpec+"d", uint64(finalval)))
			case 'o', 'x', 'X':
				buf.WriteString(fmt.Sprintf(fmtSpec+string(fmtKind), uint64(finalval)))
			default:
				buf.WriteString(fmt.Sprintf(fmtSpec+string(fmtKind), finalval))
			}
		case 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
			n, ok := arg.AsNumber()
			if !ok {
				return "", lerrors.New(lerrors.InvalidArgumentType, "format: '%c' expects a number, got %v", fmtKind, arg.Type())
			}
			switch fmtKind {
			case 'a':
				fmtKind = 'x'
			case 'A':
				fmtKind = 'X'
			}
			buf.WriteString(fmt.Sprintf(fmtSpec+string(fmtKind), float64(n)))
		case 'q':
			buf.WriteString(fmt.Sprintf(fmtSpec+"s", arg.GoString()))
		case 's':
			str, isStr := arg.AsString()
			if !isStr {
				str = arg.String()
			}
			buf.WriteString(fmt.Sprintf(fmtSpec+"s", str))
		default:
			return "", lerrors.New(lerrors.InvalidArgumentType, "format: invalid conversion %%%c", fmtKind)
		}
	}
	if argIndex < len(args) {
		return "", lerrors.New(lerrors.InvalidArgumentType, "format: %v unused arguments", len(args)-argIndex)
	}
	return buf.String(), nil
}

func toInt(val types.Value) (int64, bool) {
	n, ok := val.AsNumber()
	if !ok || !n.IsInteger() {
		return 0, false
	}
	return int64(n), true
}

func consumeFlags(tmpl []rune, i int) (int, uint32) {
	flags := uint32(0)
	at := func(i int) rune {
		if i < len(tmpl) {
			return tmpl[i]
		}
		return 0
	}
flagList:
	for {
		switch at(i) {
		case '-':
			flags |= flagLeftJust
		case '+':
			flags |= flagShowSign
		case ' ':
			flags |= flagShowMinus
		case '#':
			flags |= flagHash
		case '0':
			flags |= flagZero
		default:
			break flagList
		}
		i++
	}

	if unicode.IsDigit(at(i)) {
		for unicode.IsDigit(at(i)) {
			i++
		}
		flags |= flagHasWidth
	}

	if at(i) == '.' {
		i++
		for unicode.IsDigit(at(i)) {
			i++
		}
		flags |= flagHasPrec
	}

	return i, flags
}
