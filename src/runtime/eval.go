package runtime

import (
	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

// eval executes a single instruction against the state. It returns the final
// value and true when the outermost frame of the execution returned. Operands
// are validated before anything is popped so a failed instruction leaves the
// state as it was.
func (s *state) eval(inst bytecode.Instruction) (types.Value, bool, error) {
	switch inst.Op {
	case bytecode.NOP:
	case bytecode.COPY:
		_, vals, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		} else if err := s.push(vals[0].Clone()); err != nil {
			return types.NilValue(), false, err
		}
	case bytecode.SWAP:
		_, vals, err := s.top(2)
		if err != nil {
			return types.NilValue(), false, err
		}
		vals[0], vals[1] = vals[1], vals[0]
	case bytecode.POP:
		f, _, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		}
		f.drop(1)
	case bytecode.UNARYOP:
		_, vals, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		}
		res, err := unary(inst.Unary, vals[0])
		if err != nil {
			return types.NilValue(), false, err
		}
		vals[0] = res
	case bytecode.BINARYOP:
		f, vals, err := s.top(2)
		if err != nil {
			return types.NilValue(), false, err
		}
		res, err := binary(inst.Binary, vals[0], vals[1])
		if err != nil {
			return types.NilValue(), false, err
		}
		f.drop(1)
		vals[0] = res
	case bytecode.STORENAME:
		f, vals, err := s.top(2)
		if err != nil {
			return types.NilValue(), false, err
		}
		name, err := nameOf(vals[0])
		if err != nil {
			return types.NilValue(), false, err
		}
		f.locals[name] = vals[1]
		f.drop(2)
	case bytecode.STOREPRIMITIVE:
		f, vals, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		}
		name, err := nameOf(vals[0])
		if err != nil {
			return types.NilValue(), false, err
		}
		f.locals[name] = inst.K.Value()
		f.drop(1)
	case bytecode.PUSHNAME:
		_, vals, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		}
		name, err := nameOf(vals[0])
		if err != nil {
			return types.NilValue(), false, err
		}
		val, err := s.lookup(name)
		if err != nil {
			return types.NilValue(), false, err
		}
		vals[0] = val.Clone()
	case bytecode.PUSHPRIMITIVE:
		if err := s.push(inst.K.Value()); err != nil {
			return types.NilValue(), false, err
		}
	case bytecode.TABLEGET:
		f, vals, err := s.top(2)
		if err != nil {
			return types.NilValue(), false, err
		}
		key, err := keyOf(vals[1])
		if err != nil {
			return types.NilValue(), false, err
		}
		tbl, isTbl := vals[0].AsTable()
		if !isTbl {
			return types.NilValue(), false, lerrors.New(lerrors.InvalidVariable, "cannot index %v", vals[0].Type())
		}
		f.drop(1)
		vals[0] = tbl.Index(key).Clone()
	case bytecode.TABLELISTBUILD:
		f, vals, err := s.top(inst.A)
		if err != nil {
			return types.NilValue(), false, err
		}
		tbl := types.NewList(vals...)
		f.drop(inst.A)
		f.stack = append(f.stack, types.TableValue(tbl))
	case bytecode.TABLEDICTBUILD:
		f, vals, err := s.top(2 * inst.A)
		if err != nil {
			return types.NilValue(), false, err
		}
		tbl := types.NewSizedTable(inst.A)
		for i := 0; i < len(vals); i += 2 {
			key, err := keyOf(vals[i])
			if err != nil {
				return types.NilValue(), false, err
			}
			tbl.Set(key, vals[i+1])
		}
		f.drop(len(vals))
		f.stack = append(f.stack, types.TableValue(tbl))
	case bytecode.TABLEMERGE:
		f, vals, err := s.top(2)
		if err != nil {
			return types.NilValue(), false, err
		}
		lhs, err := tableOf(vals[0])
		if err != nil {
			return types.NilValue(), false, err
		}
		rhs, err := tableOf(vals[1])
		if err != nil {
			return types.NilValue(), false, err
		}
		f.drop(1)
		vals[0] = types.TableValue(lhs.Merge(rhs))
	case bytecode.POPJUMPIFTRUE, bytecode.POPJUMPIFFALSE:
		f, vals, err := s.top(1)
		if err != nil {
			return types.NilValue(), false, err
		}
		cond := vals[0].Truthy()
		f.drop(1)
		if cond == (inst.Op == bytecode.POPJUMPIFTRUE) {
			s.jump(inst.A)
		} else {
			s.pc++
		}
		return types.NilValue(), false, nil
	case bytecode.JUMP:
		s.jump(inst.A)
		return types.NilValue(), false, nil
	case bytecode.PUSHFUNCTION:
		if err := s.push(types.FunctionPointer(inst.A)); err != nil {
			return types.NilValue(), false, err
		}
	case bytecode.STOREFUNCTIONARGS:
		if err := s.storeFunctionArgs(inst.Flag, inst.A); err != nil {
			return types.NilValue(), false, err
		}
	case bytecode.CALL:
		return types.NilValue(), false, s.call()
	case bytecode.RETURN:
		return s.ret()
	default:
		return types.NilValue(), false, lerrors.New(lerrors.InvalidInstruction, "unknown opcode %v", uint8(inst.Op))
	}
	s.pc++
	return types.NilValue(), false, nil
}

// storeFunctionArgs binds parameters from the argument table below the n
// (named, positional) key pairs. A named binding takes priority over the
// positional one and every slot that is read is cleared so that one value
// cannot satisfy two parameters.
func (s *state) storeFunctionArgs(bindSelf bool, n int) error {
	if n < 0 {
		return lerrors.New(lerrors.EmptyStack, "negative parameter count %v", n)
	}
	f, vals, err := s.top(2*n + 1)
	if err != nil {
		return err
	}
	args, err := tableOf(vals[0])
	if err != nil {
		return err
	}
	args = args.Clone()
	bound := make(Vars, n+1)
	if bindSelf {
		val, ok := consumeArg(args, types.Str("self"))
		if !ok {
			return lerrors.New(lerrors.FunctionArgumentNotProvided, "self")
		}
		bound["self"] = val
	}
	for i := range n {
		name, err := nameOf(vals[1+2*i])
		if err != nil {
			return err
		}
		pos, err := keyOf(vals[2+2*i])
		if err != nil {
			return err
		}
		val, ok := consumeArg(args, types.Str(name))
		if !ok {
			val, ok = consumeArg(args, pos)
		}
		if !ok {
			return lerrors.New(lerrors.FunctionArgumentNotProvided, "%v (position %v)", name, pos)
		}
		bound[name] = val
	}
	f.drop(len(vals))
	for name, val := range bound {
		f.locals[name] = val
	}
	return nil
}

// consumeArg reads key from args and clears the slot. Nil bindings count as
// not provided.
func consumeArg(args *types.Table, key types.Primitive) (types.Value, bool) {
	slot := args.GetMut(key)
	if slot.IsNil() {
		return types.NilValue(), false
	}
	val := *slot
	*slot = types.NilValue()
	return val, true
}

func (s *state) call() error {
	f, vals, err := s.top(2)
	if err != nil {
		return err
	}
	args, err := tableOf(vals[0])
	callee := vals[1]
	if addr, isPtr := callee.AsFunctionPointer(); isPtr {
		if err != nil {
			return err
		}
		f.drop(2)
		callFrame := newFrame()
		callFrame.retAddr, callFrame.hasRet = s.pc+1, true
		callFrame.stack = append(callFrame.stack, types.TableValue(args))
		s.frames = append(s.frames, callFrame)
		s.pc = addr
		return nil
	} else if native, isNative := callee.AsNative(); isNative {
		if err != nil {
			return err
		}
		res, err := native.Invoke(args)
		if err != nil {
			return err
		}
		f.drop(1)
		vals[0] = res
		s.pc++
		return nil
	}
	return lerrors.New(lerrors.InvalidCallable, "cannot call %v", callee.Type())
}

func (s *state) ret() (types.Value, bool, error) {
	f, vals, err := s.top(1)
	if err != nil {
		return types.NilValue(), false, err
	}
	result := vals[0]
	if !f.hasRet {
		f.drop(1)
		s.frames = s.frames[:len(s.frames)-1]
		return result, true, nil
	} else if f.retAddr < 0 || f.retAddr > s.codeLen {
		return types.NilValue(), false, lerrors.New(lerrors.InvalidReturnAddress, "%v", f.retAddr)
	} else if len(s.frames) < 2 {
		return types.NilValue(), false, lerrors.ErrNoStackFrames
	}
	s.frames = s.frames[:len(s.frames)-1]
	caller := s.frames[len(s.frames)-1]
	caller.stack = append(caller.stack, result)
	s.pc = f.retAddr
	return types.NilValue(), false, nil
}
