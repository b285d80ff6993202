package runtime

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lestrrat-go/strftime"

	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/format"
	"github.com/tanema/mx/src/lerrors"
	"github.com/tanema/mx/src/types"
)

// Stdlib returns the default globals. print writes to out.
func Stdlib(out io.Writer) Vars {
	return Vars{
		"VERSION": types.Str(conf.VERSION).Value(),
		"str":     types.NativeValue(Func1("str", stdStr)),
		"bool":    types.NativeValue(Func1("bool", types.Value.Truthy)),
		"type":    types.NativeValue(Func1("type", stdType)),
		"len":     types.NativeValue(Fn("len", stdLen)),
		"print":   types.NativeValue(Fn("print", stdPrint(out))),
		"date":    types.NativeValue(Fn("date", stdDate)),
		"format":  types.NativeValue(Fn("format", stdFormat)),
		"abs":     types.NativeValue(Func1("abs", stdAbs)),
		"max":     types.NativeValue(Func2("max", stdMax)),
		"min":     types.NativeValue(Func2("min", stdMin)),
		"compact": types.NativeValue(Func1("compact", stdCompact)),
		"keys":    types.NativeValue(Func1("keys", stdKeys)),
	}
}

func stdStr(val types.Value) string {
	if str, isStr := val.AsString(); isStr {
		return str
	}
	return val.String()
}

func stdType(val types.Value) string {
	return val.Type().String()
}

func stdLen(args *types.Table) (types.Value, error) {
	val, err := arg[types.Value]("len", args, 0)
	if err != nil {
		return types.NilValue(), err
	}
	if tbl, isTbl := val.AsTable(); isTbl {
		return types.Num(tbl.ListLen()).Value(), nil
	} else if str, isStr := val.AsString(); isStr {
		return types.Num(utf8.RuneCountInString(str)).Value(), nil
	}
	return types.NilValue(), lerrors.New(lerrors.InvalidArgumentType, "len: cannot get length of %v", val.Type())
}

func stdPrint(out io.Writer) func(*types.Table) (types.Value, error) {
	return func(args *types.Table) (types.Value, error) {
		vals := positionalArgs(args)
		strParts := make([]string, len(vals))
		for i, val := range vals {
			strParts[i] = stdStr(val)
		}
		_, err := fmt.Fprintln(out, strings.Join(strParts, "\t"))
		return types.NilValue(), err
	}
}

// positionalArgs returns the values bound to non-negative integer keys in
// order, with nil filling the holes between them. The list ends at the first
// key that would leave more holes than values.
func positionalArgs(args *types.Table) []types.Value {
	vals := []types.Value{}
	used := 0
	for _, key := range args.Keys() {
		n, isNum := key.AsNumber()
		if !isNum || !n.IsInteger() || n < 0 {
			continue
		} else if float64(n) >= float64(2*(used+1)) {
			break
		}
		for len(vals) < int(n) {
			vals = append(vals, types.NilValue())
		}
		vals = append(vals, args.Index(key))
		used++
	}
	return vals
}

func stdFormat(args *types.Table) (types.Value, error) {
	tmpl, err := arg[string]("format", args, 0)
	if err != nil {
		return types.NilValue(), err
	}
	vals := positionalArgs(args)
	str, err := format.String(tmpl, vals[1:]...)
	if err != nil {
		return types.NilValue(), err
	}
	return types.Str(str).Value(), nil
}

func stdDate(args *types.Table) (types.Value, error) {
	format := "%c"
	if val := args.Index(types.Num(0)); !val.IsNil() {
		str, isStr := val.AsString()
		if !isStr {
			return types.NilValue(), lerrors.New(lerrors.InvalidArgumentType, "date: format must be a string, got %v", val.Type())
		}
		format = str
	}
	fmtTime := time.Now()
	if val := args.Index(types.Num(1)); !val.IsNil() {
		secs, isNum := types.FromValue[int64](val)
		if !isNum {
			return types.NilValue(), lerrors.New(lerrors.InvalidArgumentType, "date: time must be an integer, got %v", val.Type())
		}
		fmtTime = time.Unix(secs, 0)
	}
	if strings.HasPrefix(format, "!") {
		fmtTime = fmtTime.UTC()
	}
	format = strings.TrimPrefix(format, "!")
	if strings.TrimSpace(format) == "*t" {
		return types.TableValue(types.NewDict(
			types.Pair{Key: types.Str("year"), Val: types.Num(fmtTime.Year()).Value()},
			types.Pair{Key: types.Str("month"), Val: types.Num(int(fmtTime.Month())).Value()},
			types.Pair{Key: types.Str("day"), Val: types.Num(fmtTime.Day()).Value()},
			types.Pair{Key: types.Str("hour"), Val: types.Num(fmtTime.Hour()).Value()},
			types.Pair{Key: types.Str("min"), Val: types.Num(fmtTime.Minute()).Value()},
			types.Pair{Key: types.Str("second"), Val: types.Num(fmtTime.Second()).Value()},
			types.Pair{Key: types.Str("wday"), Val: types.Num(int(fmtTime.Weekday()) + 1).Value()},
			types.Pair{Key: types.Str("yday"), Val: types.Num(fmtTime.YearDay()).Value()},
			types.Pair{Key: types.Str("isdst"), Val: types.Bool(fmtTime.IsDST()).Value()},
		)), nil
	}
	strf, err := strftime.New(format)
	if err != nil {
		return types.NilValue(), lerrors.New(lerrors.InvalidArgumentType, "date: invalid time format %q", format)
	}
	return types.Str(strf.FormatString(fmtTime)).Value(), nil
}

func stdAbs(n types.Number) types.Number {
	return types.Number(math.Abs(float64(n)))
}

func stdMax(a, b types.Number) types.Number {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func stdMin(a, b types.Number) types.Number {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

func stdCompact(tbl *types.Table) *types.Table {
	out := tbl.Clone()
	out.Compact()
	return out
}

func stdKeys(tbl *types.Table) *types.Table {
	keys := tbl.Keys()
	vals := make([]types.Value, len(keys))
	for i, key := range keys {
		vals[i] = key.Value()
	}
	return types.NewList(vals...)
}
