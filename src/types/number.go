package types

import (
	"math"
	"strconv"
	"strings"
)

// Number is a 64 bit float with a total order. NaN is equal to itself and less
// than every other number, including negative infinity. Equal numbers always
// have the same Hash so Number is safe to use as a key.
type Number float64

// canonicalNaN is the bit pattern every NaN hashes as.
var canonicalNaN = math.Float64bits(math.NaN())

// ParseNumber parses s as a float. On failure it returns NaN rather than an error.
func ParseNumber(s string) Number {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(f)
}

// IsNaN reports whether n is NaN.
func (n Number) IsNaN() bool {
	return math.IsNaN(float64(n))
}

// Compare returns -1, 0 or 1 according to the total order.
func (n Number) Compare(other Number) int {
	aNaN, bNaN := n.IsNaN(), other.IsNaN()
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case n < other:
		return -1
	case n > other:
		return 1
	default:
		return 0
	}
}

// Equal is true when Compare is 0. Unlike == it holds for NaN and NaN.
func (n Number) Equal(other Number) bool {
	return n.Compare(other) == 0
}

// Hash returns the same value for every pair of equal numbers: all NaNs share a
// hash and negative zero hashes as zero.
func (n Number) Hash() uint64 {
	if n.IsNaN() {
		return canonicalNaN
	} else if n == 0 {
		return 0
	}
	return math.Float64bits(float64(n))
}

// Truthy is false only for zero and negative zero. NaN is true.
func (n Number) Truthy() bool {
	return n != 0
}

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
