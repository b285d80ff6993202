package runtime

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tanema/mx/src/asm"
	"github.com/tanema/mx/src/types"
)

type replSession struct {
	vm      *VM
	globals Vars
	lines   []string
}

// REPL will start an interactive session reading instruction listings. Lines
// are collected until an empty line, then the collected listing is run with
// globals. ".list" prints the pending program, ".globals" the global names and
// ".reset" drops the pending lines.
func (vm *VM) REPL(globals Vars) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()
	session := &replSession{vm: vm, globals: globals}
	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(session.lines) > 0 {
					rl.SetPrompt("> ")
					session.reset()
					fmt.Fprint(os.Stderr, "Press ctrl-c again to quit.\n")
					continue
				}
				return nil
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		session.handle(src, os.Stderr)
		if len(session.lines) > 0 {
			rl.SetPrompt("...> ")
		} else {
			rl.SetPrompt("> ")
		}
	}
}

func (session *replSession) reset() {
	session.lines = session.lines[:0]
}

func (session *replSession) handle(line string, out io.Writer) {
	switch strings.TrimSpace(line) {
	case ".reset":
		session.reset()
	case ".list":
		if prog, err := asm.String("<repl>", strings.Join(session.lines, "\n")); err != nil {
			fmt.Fprintln(out, err)
		} else {
			fmt.Fprint(out, prog.String())
		}
	case ".globals":
		fmt.Fprintln(out, strings.Join(types.SortedNames(session.globals), "\t"))
	case "":
		if len(session.lines) == 0 {
			return
		}
		defer session.reset()
		prog, err := asm.String("<repl>", strings.Join(session.lines, "\n"))
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		res, err := session.vm.Run(prog, session.globals)
		if err != nil {
			fmt.Fprintln(out, err)
		} else if !res.IsNil() {
			fmt.Fprintln(out, res.GoString())
		}
	default:
		session.lines = append(session.lines, line)
	}
}
