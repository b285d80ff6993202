package runtime

import (
	"context"
	"log/slog"

	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

type (
	// VM is the interpreter runtime that does everything in memory. It only
	// holds configuration, every execution gets its own state so a single VM
	// can be used by many goroutines at once.
	VM struct {
		ctx       context.Context
		logger    *slog.Logger
		stepLimit int64
	}
	// Option configures a VM.
	Option func(*VM)
)

// WithStepLimit stops executions with StepLimitExceeded after n instructions.
// Zero means no limit.
func WithStepLimit(n int64) Option {
	return func(vm *VM) { vm.stepLimit = n }
}

// WithLogger sets where execution traces are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(vm *VM) {
		if logger != nil {
			vm.logger = logger
		}
	}
}

// New will create a new vm for evaluating. Cancelling ctx interrupts every
// running execution.
func New(ctx context.Context, opts ...Option) *VM {
	vm := &VM{
		ctx:       ctx,
		logger:    conf.Discard(),
		stepLimit: conf.DEFAULTSTEPLIMIT,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Run evaluates prog from its first instruction with a copy of globals. The
// result is the value returned from the outermost frame, or nil when the
// program runs off its end.
func (vm *VM) Run(prog *bytecode.Program, globals Vars) (types.Value, error) {
	return vm.eval(prog, newState(prog.Len(), globals))
}

// Call invokes fn directly with an argument table. Function pointers run in
// prog in a frame without a return address so their own RETURN ends the
// execution. Natives are invoked without touching prog.
func (vm *VM) Call(prog *bytecode.Program, fn types.Value, args *types.Table, globals Vars) (types.Value, error) {
	if args == nil {
		args = types.NewTable()
	}
	if native, isNative := fn.AsNative(); isNative {
		return native.Invoke(args.Clone())
	}
	addr, isPtr := fn.AsFunctionPointer()
	if !isPtr {
		return types.NilValue(), lerrors.New(lerrors.InvalidCallable, "cannot call %v", fn.Type())
	}
	s := newState(prog.Len(), globals)
	s.pc = addr
	s.frames[0].stack = append(s.frames[0].stack, types.TableValue(args.Clone()))
	return vm.eval(prog, s)
}

func (vm *VM) eval(prog *bytecode.Program, s *state) (types.Value, error) {
	var steps int64
	depth := len(s.frames)
	vm.logger.Debug("execution started", "program", prog.Name, "pc", s.pc)
	for {
		if err := vm.ctx.Err(); err != nil {
			return types.NilValue(), lerrors.At(lerrors.New(lerrors.Interrupted, "%v", err), s.pc, "")
		}
		inst, ok := prog.At(s.pc)
		if !ok {
			if s.pc == prog.Len() {
				vm.logger.Debug("execution fell off the end", "program", prog.Name, "steps", steps)
				return types.NilValue(), nil
			}
			return types.NilValue(), lerrors.At(lerrors.New(lerrors.InvalidProgramCounter, "%v out of range", s.pc), s.pc, "")
		}
		if steps++; vm.stepLimit > 0 && steps > vm.stepLimit {
			return types.NilValue(), lerrors.At(lerrors.New(lerrors.StepLimitExceeded, "%v steps", vm.stepLimit), s.pc, inst.Op.String())
		}
		pc := s.pc
		val, done, err := s.eval(inst)
		if err != nil {
			return types.NilValue(), lerrors.At(err, pc, inst.Op.String())
		} else if done {
			vm.logger.Debug("execution returned", "program", prog.Name, "steps", steps, "result", val.String())
			return val, nil
		}
		if len(s.frames) != depth {
			if len(s.frames) > depth {
				vm.logger.Debug("frame pushed", "pc", pc, "target", s.pc, "depth", len(s.frames))
			} else {
				vm.logger.Debug("frame popped", "pc", pc, "return", s.pc, "depth", len(s.frames))
			}
			depth = len(s.frames)
		}
	}
}
