// Package lerrors is a unified errors package for the mx runtime so that every
// failure raised while evaluating bytecode is formatted and matched in a uniform
// way.
package lerrors

import (
	"errors"
	"fmt"
)

type (
	// ErrorKind is an enum to describe what went wrong.
	ErrorKind int
	// Error captures all errors in the mx runtime. Kind is what callers should
	// match on, PC and Op describe where in the program it happened when known.
	Error struct {
		Kind ErrorKind
		Err  error
		Op   string
		PC   int
	}
)

const (
	// EmptyStack means the operand stack had fewer values than an instruction needs.
	EmptyStack ErrorKind = iota
	// NoStackFrames means an operation needed a call frame but none was active.
	NoStackFrames
	// InvalidVariable is a failed name lookup or store, or a non-string used as a name.
	InvalidVariable
	// NotATable is a table operation applied to a value that is not a table.
	NotATable
	// InvalidTableKey is a non-primitive value used as a table key.
	InvalidTableKey
	// InvalidProgramCounter is a pc that is neither an instruction nor the end of the program.
	InvalidProgramCounter
	// InvalidReturnAddress is a frame return address outside of the program.
	InvalidReturnAddress
	// InvalidCallable is a call on a value that is not a function.
	InvalidCallable
	// FunctionArgumentNotProvided means argument binding found no value for a parameter.
	FunctionArgumentNotProvided
	// InvalidOperand is an operator applied to values of the wrong type.
	InvalidOperand
	// InvalidArgumentType is a native function argument that could not be converted.
	InvalidArgumentType
	// Interrupted means the execution context was cancelled.
	Interrupted
	// StepLimitExceeded means the execution ran out of instruction budget.
	StepLimitExceeded
	// InvalidInstruction is an instruction with an opcode or operator the runtime does not know.
	InvalidInstruction
)

var kindNames = [...]string{
	EmptyStack:                  "empty stack",
	NoStackFrames:               "no stack frames",
	InvalidVariable:             "invalid variable",
	NotATable:                   "not a table",
	InvalidTableKey:             "invalid table key",
	InvalidProgramCounter:       "invalid program counter",
	InvalidReturnAddress:        "invalid return address",
	InvalidCallable:             "invalid callable",
	FunctionArgumentNotProvided: "function argument not provided",
	InvalidOperand:              "invalid operand",
	InvalidArgumentType:         "invalid argument type",
	Interrupted:                 "interrupted",
	StepLimitExceeded:           "step limit exceeded",
	InvalidInstruction:          "invalid instruction",
}

// Sentinels to be used with errors.Is, they match any Error of the same kind.
var (
	ErrEmptyStack                  = &Error{Kind: EmptyStack, PC: -1}
	ErrNoStackFrames               = &Error{Kind: NoStackFrames, PC: -1}
	ErrInvalidVariable             = &Error{Kind: InvalidVariable, PC: -1}
	ErrNotATable                   = &Error{Kind: NotATable, PC: -1}
	ErrInvalidTableKey             = &Error{Kind: InvalidTableKey, PC: -1}
	ErrInvalidProgramCounter       = &Error{Kind: InvalidProgramCounter, PC: -1}
	ErrInvalidReturnAddress        = &Error{Kind: InvalidReturnAddress, PC: -1}
	ErrInvalidCallable             = &Error{Kind: InvalidCallable, PC: -1}
	ErrFunctionArgumentNotProvided = &Error{Kind: FunctionArgumentNotProvided, PC: -1}
	ErrInvalidOperand              = &Error{Kind: InvalidOperand, PC: -1}
	ErrInvalidArgumentType         = &Error{Kind: InvalidArgumentType, PC: -1}
	ErrInterrupted                 = &Error{Kind: Interrupted, PC: -1}
	ErrStepLimitExceeded           = &Error{Kind: StepLimitExceeded, PC: -1}
	ErrInvalidInstruction          = &Error{Kind: InvalidInstruction, PC: -1}
)

func (kind ErrorKind) String() string {
	if kind >= 0 && int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// New creates an error of the given kind. The pc is unknown until the driver
// annotates it with At.
func New(kind ErrorKind, format string, args ...any) *Error {
	var err error
	if format != "" {
		err = fmt.Errorf(format, args...)
	}
	return &Error{Kind: kind, Err: err, PC: -1}
}

// At annotates err with the location it was raised at. Errors that are not
// runtime errors are wrapped as InvalidOperand. Locations that were
// already set are kept.
func At(err error, pc int, op string) error {
	var rErr *Error
	if !errors.As(err, &rErr) {
		return &Error{Kind: InvalidOperand, Err: err, PC: pc, Op: op}
	}
	if rErr.PC >= 0 {
		return rErr
	}
	return &Error{Kind: rErr.Kind, Err: rErr.Err, PC: pc, Op: op}
}

// KindOf returns the kind of err and whether it is a runtime error at all.
func KindOf(err error) (ErrorKind, bool) {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Kind, true
	}
	return 0, false
}

func (err *Error) Error() string {
	msg := err.Kind.String()
	if err.Err != nil {
		msg = fmt.Sprintf("%v: %v", msg, err.Err)
	}
	if err.PC < 0 {
		return msg
	}
	if err.Op == "" {
		return fmt.Sprintf("mx:%v %v", err.PC, msg)
	}
	return fmt.Sprintf("mx:%v:%v %v", err.PC, err.Op, msg)
}

// Is reports kind equality so that the sentinel values match.
func (err *Error) Is(target error) bool {
	var tErr *Error
	if !errors.As(target, &tErr) {
		return false
	}
	return tErr.Kind == err.Kind
}

func (err *Error) Unwrap() error {
	return err.Err
}
