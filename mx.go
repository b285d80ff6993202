package mx

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/tanema/mx/src/asm"
	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/runtime"
	"github.com/tanema/mx/src/types"
)

// String will simply assemble and run an instruction listing with the standard
// globals.
func String(label, src string) (types.Value, error) {
	prog, err := asm.String(label, src)
	if err != nil {
		return types.NilValue(), err
	}
	return runtime.New(context.Background()).Run(prog, runtime.Stdlib(os.Stdout))
}

// File will load and run a listing or image file with the standard globals.
func File(path string) (types.Value, error) {
	prog, err := LoadFile(path)
	if err != nil {
		return types.NilValue(), err
	}
	return runtime.New(context.Background()).Run(prog, runtime.Stdlib(os.Stdout))
}

// LoadFile reads a program from a listing or an image file.
func LoadFile(path string) (*bytecode.Program, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return Load(path, src)
}

// Load reads a program from src. Images are recognized by their signature,
// anything else is read as a listing.
func Load(name string, src io.ReadSeeker) (*bytecode.Program, error) {
	if bytecode.HasSignature(src) {
		prog, err := bytecode.Undump(src)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", name, err)
		}
		if prog.Name == "" {
			prog.Name = name
		}
		return prog, nil
	}
	return asm.Parse(name, src)
}

// Export finds the function called name in the value a program returned, or
// in globals when the result does not export it.
func Export(result types.Value, globals runtime.Vars, name string) (types.Value, bool) {
	if tbl, isTbl := result.AsTable(); isTbl {
		if fn := tbl.Index(types.Str(name)); fn.IsFunction() {
			return fn, true
		}
	}
	if fn, ok := globals[name]; ok && fn.IsFunction() {
		return fn, true
	}
	return types.NilValue(), false
}

// ParseArg converts a command line argument into a primitive. Numbers and
// booleans are recognized, everything else stays a string.
func ParseArg(arg string) types.Primitive {
	switch strings.TrimSpace(arg) {
	case "true":
		return types.Bool(true)
	case "false":
		return types.Bool(false)
	case "nil":
		return types.Nil()
	}
	if n := types.ParseNumber(arg); !n.IsNaN() || strings.EqualFold(strings.TrimSpace(arg), "nan") {
		return types.Num(n)
	}
	return types.Str(arg)
}

// Globals builds the standard globals with the configured globals on top. print
// writes to out.
func Globals(cfg *conf.Config, out io.Writer) (runtime.Vars, error) {
	globals := runtime.Stdlib(out)
	for _, name := range slices.Sorted(maps.Keys(cfg.Globals)) {
		val, err := types.ToValue(cfg.Globals[name])
		if err != nil {
			return nil, fmt.Errorf("global %v: %w", name, err)
		}
		globals[name] = val
	}
	return globals, nil
}
