package runtime

import (
	"math"

	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

func unary(op bytecode.UnaryOp, val types.Value) (types.Value, error) {
	switch op {
	case bytecode.Not:
		return types.Bool(!val.Truthy()).Value(), nil
	case bytecode.Plus, bytecode.Minus:
		n, isNum := val.AsNumber()
		if !isNum {
			return types.NilValue(), lerrors.New(lerrors.InvalidOperand, "cannot apply %v to %v", op, val.Type())
		}
		if op == bytecode.Minus {
			n = -n
		}
		return types.Num(n).Value(), nil
	default:
		return types.NilValue(), lerrors.New(lerrors.InvalidInstruction, "unknown unary operator %v", uint8(op))
	}
}

func binary(op bytecode.BinaryOp, lval, rval types.Value) (types.Value, error) {
	switch op {
	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Mod, bytecode.IntegerDiv, bytecode.Pow:
		lnum, lisNum := lval.AsNumber()
		rnum, risNum := rval.AsNumber()
		if !lisNum || !risNum {
			return types.NilValue(), lerrors.New(lerrors.InvalidOperand, "cannot %v %v %v", lval.Type(), op, rval.Type())
		}
		return types.Num(arith(op, float64(lnum), float64(rnum))).Value(), nil
	case bytecode.Eq:
		return types.Bool(lval.Equal(rval)).Value(), nil
	case bytecode.Ne:
		return types.Bool(!lval.Equal(rval)).Value(), nil
	case bytecode.Lt, bytecode.Lte, bytecode.Gt, bytecode.Gte:
		res, err := compareVal(op, lval, rval)
		if err != nil {
			return types.NilValue(), err
		}
		return types.Bool(res).Value(), nil
	case bytecode.And:
		if !lval.Truthy() {
			return lval, nil
		}
		return rval, nil
	case bytecode.Or:
		if lval.Truthy() {
			return lval, nil
		}
		return rval, nil
	case bytecode.Coalesce:
		if lval.IsNil() {
			return rval, nil
		}
		return lval, nil
	default:
		return types.NilValue(), lerrors.New(lerrors.InvalidInstruction, "unknown binary operator %v", uint8(op))
	}
}

func arith(op bytecode.BinaryOp, lval, rval float64) float64 {
	switch op {
	case bytecode.Add:
		return lval + rval
	case bytecode.Sub:
		return lval - rval
	case bytecode.Mul:
		return lval * rval
	case bytecode.Div:
		return lval / rval
	case bytecode.Mod:
		return math.Mod(lval, rval)
	case bytecode.IntegerDiv:
		return math.Floor(lval / rval)
	case bytecode.Pow:
		return math.Pow(lval, rval)
	default:
		panic("cannot perform arithmetic with " + op.String())
	}
}

// compareVal orders primitives with the same total order tables use for keys,
// so NaN sorts before every other number.
func compareVal(op bytecode.BinaryOp, lval, rval types.Value) (bool, error) {
	lprim, lisPrim := lval.AsPrimitive()
	rprim, risPrim := rval.AsPrimitive()
	if !lisPrim || !risPrim {
		return false, lerrors.New(lerrors.InvalidOperand, "cannot compare %v %v %v", lval.Type(), op, rval.Type())
	}
	cmp := lprim.Compare(rprim)
	switch op {
	case bytecode.Lt:
		return cmp < 0, nil
	case bytecode.Lte:
		return cmp <= 0, nil
	case bytecode.Gt:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}
