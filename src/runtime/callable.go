package runtime

import (
	"fmt"

	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

// Callable is a host function exposed to bytecode. It implements types.Native
// so the evaluator can call it like any other function value without knowing
// how it was wrapped. Positional arguments are read from the keys 0..n-1 of the
// argument table and methods read their receiver from the "self" key.
type Callable struct {
	name   string
	method bool
	fn     func(args *types.Table) (types.Value, error)
}

var _ types.Native = (*Callable)(nil)

// Fn creates a callable from a function that works on the raw argument table.
func Fn(name string, fn func(args *types.Table) (types.Value, error)) *Callable {
	return &Callable{name: name, fn: fn}
}

// Func0 wraps a function without arguments.
func Func0[R any](name string, fn func() R) *Callable {
	return Fn(name, func(*types.Table) (types.Value, error) {
		return result(name, fn())
	})
}

// Func1 wraps a function with one argument.
func Func1[A1, R any](name string, fn func(A1) R) *Callable {
	return Fn(name, func(args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(a1))
	})
}

// Func2 wraps a function with two arguments.
func Func2[A1, A2, R any](name string, fn func(A1, A2) R) *Callable {
	return Fn(name, func(args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		a2, err := arg[A2](name, args, 1)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(a1, a2))
	})
}

// Func3 wraps a function with three arguments.
func Func3[A1, A2, A3, R any](name string, fn func(A1, A2, A3) R) *Callable {
	return Fn(name, func(args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		a2, err := arg[A2](name, args, 1)
		if err != nil {
			return types.NilValue(), err
		}
		a3, err := arg[A3](name, args, 2)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(a1, a2, a3))
	})
}

// Method0 wraps a method without arguments.
func Method0[R any](name string, fn func(*types.Table) R) *Callable {
	return method(name, func(self, _ *types.Table) (types.Value, error) {
		return result(name, fn(self))
	})
}

// Method1 wraps a method with one argument.
func Method1[A1, R any](name string, fn func(*types.Table, A1) R) *Callable {
	return method(name, func(self, args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(self, a1))
	})
}

// Method2 wraps a method with two arguments.
func Method2[A1, A2, R any](name string, fn func(*types.Table, A1, A2) R) *Callable {
	return method(name, func(self, args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		a2, err := arg[A2](name, args, 1)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(self, a1, a2))
	})
}

// Method3 wraps a method with three arguments.
func Method3[A1, A2, A3, R any](name string, fn func(*types.Table, A1, A2, A3) R) *Callable {
	return method(name, func(self, args *types.Table) (types.Value, error) {
		a1, err := arg[A1](name, args, 0)
		if err != nil {
			return types.NilValue(), err
		}
		a2, err := arg[A2](name, args, 1)
		if err != nil {
			return types.NilValue(), err
		}
		a3, err := arg[A3](name, args, 2)
		if err != nil {
			return types.NilValue(), err
		}
		return result(name, fn(self, a1, a2, a3))
	})
}

func method(name string, fn func(self, args *types.Table) (types.Value, error)) *Callable {
	return &Callable{
		name:   name,
		method: true,
		fn: func(args *types.Table) (types.Value, error) {
			val, ok := args.Get(types.Str("self"))
			if !ok || val.IsNil() {
				return types.NilValue(), lerrors.New(lerrors.FunctionArgumentNotProvided, "%v: self", name)
			}
			self, isTbl := val.AsTable()
			if !isTbl {
				return types.NilValue(), lerrors.New(lerrors.NotATable, "%v: self is %v", name, val.Type())
			}
			return fn(self, args)
		},
	}
}

// Name is the name the callable was registered with.
func (c *Callable) Name() string { return c.name }

// IsMethod reports whether the callable expects a receiver.
func (c *Callable) IsMethod() bool { return c.method }

// Invoke calls the function with a prepared argument table.
func (c *Callable) Invoke(args *types.Table) (types.Value, error) {
	if args == nil {
		args = types.NewTable()
	}
	return c.fn(args)
}

// Call invokes the function from Go with positional arguments.
func (c *Callable) Call(args ...any) (types.Value, error) {
	tbl, err := positional(c.name, args)
	if err != nil {
		return types.NilValue(), err
	}
	return c.Invoke(tbl)
}

// CallMethod invokes the function from Go with a receiver and positional
// arguments.
func (c *Callable) CallMethod(self *types.Table, args ...any) (types.Value, error) {
	tbl, err := positional(c.name, args)
	if err != nil {
		return types.NilValue(), err
	}
	tbl.Set(types.Str("self"), types.TableValue(self))
	return c.Invoke(tbl)
}

func (c *Callable) String() string {
	return fmt.Sprintf("function:[%s()]", c.name)
}

func positional(name string, args []any) (*types.Table, error) {
	tbl := types.NewSizedTable(len(args))
	for i, in := range args {
		val, err := types.ToValue(in)
		if err != nil {
			return nil, lerrors.New(lerrors.InvalidArgumentType, "%v: argument %v: %v", name, i, err)
		}
		tbl.Set(types.Num(i), val)
	}
	return tbl, nil
}

// arg reads positional argument i. Like parameter binding in bytecode, a nil
// argument counts as absent, unless it is bound and T can hold nil.
func arg[T any](name string, args *types.Table, i int) (T, error) {
	val, bound := args.Get(types.Num(i))
	out, ok := types.FromValue[T](val)
	if !bound || (!ok && val.IsNil()) {
		return out, lerrors.New(lerrors.FunctionArgumentNotProvided, "%v: argument %v", name, i)
	} else if !ok {
		return out, lerrors.New(lerrors.InvalidArgumentType, "%v: argument %v cannot be %T, got %v", name, i, out, val.Type())
	}
	return out, nil
}

func result[R any](name string, res R) (types.Value, error) {
	val, err := types.ToValue(res)
	if err != nil {
		return types.NilValue(), lerrors.New(lerrors.InvalidArgumentType, "%v: return value: %v", name, err)
	}
	return val, nil
}
