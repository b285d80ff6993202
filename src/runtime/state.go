package runtime

import (
	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

type (
	// Vars are name bindings, used for globals and for the locals of a frame.
	Vars map[string]types.Value
	frame struct {
		locals  Vars
		stack   []types.Value
		retAddr int
		hasRet  bool
	}
	// state is the mutable machine state of one execution.
	state struct {
		pc      int
		codeLen int
		globals Vars
		frames  []*frame
	}
)

// Clone copies vars and every value in them.
func (vars Vars) Clone() Vars {
	out := make(Vars, len(vars))
	for name, val := range vars {
		out[name] = val.Clone()
	}
	return out
}

func newFrame() *frame {
	return &frame{
		locals: Vars{},
		stack:  make([]types.Value, 0, conf.INITIALSTACKSIZE),
	}
}

func newState(codeLen int, globals Vars) *state {
	frames := make([]*frame, 1, conf.INITIALFRAMES)
	frames[0] = newFrame()
	return &state{
		codeLen: codeLen,
		globals: globals.Clone(),
		frames:  frames,
	}
}

func (s *state) current() (*frame, error) {
	if len(s.frames) == 0 {
		return nil, lerrors.ErrNoStackFrames
	}
	return s.frames[len(s.frames)-1], nil
}

func (s *state) push(val types.Value) error {
	f, err := s.current()
	if err != nil {
		return err
	}
	f.stack = append(f.stack, val)
	return nil
}

// top returns the n topmost values of the current frame's operand stack in
// push order without removing them.
func (s *state) top(n int) (*frame, []types.Value, error) {
	f, err := s.current()
	if err != nil {
		return nil, nil, err
	}
	if n < 0 || len(f.stack) < n {
		return nil, nil, lerrors.New(lerrors.EmptyStack, "need %v values, have %v", n, len(f.stack))
	}
	return f, f.stack[len(f.stack)-n:], nil
}

func (f *frame) drop(n int) {
	clear(f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
}

// lookup searches the current frame's locals then the globals.
func (s *state) lookup(name string) (types.Value, error) {
	if f, err := s.current(); err != nil {
		return types.NilValue(), err
	} else if val, ok := f.locals[name]; ok {
		return val, nil
	} else if val, ok := s.globals[name]; ok {
		return val, nil
	}
	return types.NilValue(), lerrors.New(lerrors.InvalidVariable, "%v is not defined", name)
}

func (s *state) jump(offset int) {
	if offset == 0 {
		s.pc++
		return
	}
	s.pc += offset
}

func nameOf(val types.Value) (string, error) {
	name, isStr := val.AsString()
	if !isStr {
		return "", lerrors.New(lerrors.InvalidVariable, "%v is not a name", val.Type())
	}
	return name, nil
}

func keyOf(val types.Value) (types.Primitive, error) {
	key, isPrim := val.AsPrimitive()
	if !isPrim {
		return key, lerrors.New(lerrors.InvalidTableKey, "%v cannot be used as a key", val.Type())
	}
	return key, nil
}

func tableOf(val types.Value) (*types.Table, error) {
	tbl, isTbl := val.AsTable()
	if !isTbl {
		return nil, lerrors.New(lerrors.NotATable, "expected table but found %v", val.Type())
	}
	return tbl, nil
}
