// numeric.go — the four-level numeric tower: Integer < Rational < Real <
// Complex (spec.md §3.1, §9).
//
// Integer and Rational are backed by github.com/nukata/goarith, the same
// arbitrary-precision arithmetic library other_examples/nukata-little-
// scheme-in-go wires for the identical purpose: its Number interface wraps
// int64/*big.Int/*big.Rat and keeps rationals in canonical lowest-terms
// form automatically (2/2 reduces to the integer 1), which is exactly the
// canonicalization spec.md §3.1's Rational row and §9's "canonicalise
// downward where exactness is preserved" require. goarith.Number exposes
// Add/Sub/Mul/Div/Cmp plus a Float64 conversion; this file only calls that
// documented surface, never the library's concrete int64/big.Int/big.Rat
// implementation types, so promotion never has to guess at internals.
//
// Real is a plain float64. Complex is Go's built-in complex128 — there is
// no ecosystem complex-number library anywhere in the retrieved pack, and
// complex128 is a language primitive rather than a hand-rolled stdlib
// substitute for one, so no DESIGN.md justification burden applies beyond
// noting the absence of an alternative.
package goscheme

import (
	"github.com/nukata/goarith"
)

func IntegerVal(n int64) Value {
	return Value{Tag: TagInteger, Data: goarith.AsNumber(n)}
}

func IntegerFromNumber(n goarith.Number) Value {
	return Value{Tag: TagInteger, Data: n}
}

func RealVal(f float64) Value { return Value{Tag: TagReal, Data: f} }

func ComplexVal(re, im float64) Value {
	return Value{Tag: TagComplex, Data: complex(re, im)}
}

func (v Value) numberData() goarith.Number { return v.Data.(goarith.Number) }
func (v Value) realData() float64          { return v.Data.(float64) }
func (v Value) complexData() complex128    { return v.Data.(complex128) }

func isExact(v Value) bool { return v.Tag == TagInteger || v.Tag == TagRational }
func isNumeric(v Value) bool {
	switch v.Tag {
	case TagInteger, TagRational, TagReal, TagComplex:
		return true
	default:
		return false
	}
}

// numericRank orders the promotion lattice for Promote.
func numericRank(v Value) int {
	switch v.Tag {
	case TagInteger:
		return 0
	case TagRational:
		return 1
	case TagReal:
		return 2
	case TagComplex:
		return 3
	default:
		return -1
	}
}

var zeroNumber = goarith.AsNumber(int64(0))

// ExactFromNumber re-tags a goarith.Number result as Integer when it
// divides evenly (its float64 value has no fractional part and it equals
// its own truncation under goarith's own Cmp), else as Rational. This
// avoids depending on goarith's unexported/concrete result types: only the
// documented Number.Cmp and Number.Float64 surface is used.
func ExactFromNumber(n goarith.Number) Value {
	f := n.Float64()
	truncated := goarith.AsNumber(int64(f))
	if f == float64(int64(f)) && n.Cmp(truncated) == 0 {
		return Value{Tag: TagInteger, Data: n}
	}
	return Value{Tag: TagRational, Data: n}
}

// ToFloat64 converts any numeric variant (except Complex) to a float64, for
// promotion into Real.
func ToFloat64(v Value) float64 {
	switch v.Tag {
	case TagInteger, TagRational:
		return v.numberData().Float64()
	case TagReal:
		return v.realData()
	default:
		panic(newEvalError(KindTypeMismatch, "expected a real number", v))
	}
}

func toComplex(v Value) complex128 {
	if v.Tag == TagComplex {
		return v.complexData()
	}
	return complex(ToFloat64(v), 0)
}

// Promote lifts a and b to their common rank in the Integer < Rational <
// Real < Complex lattice and returns values at that common rank.
func Promote(a, b Value) (Value, Value) {
	ra, rb := numericRank(a), numericRank(b)
	if ra < 0 || rb < 0 {
		bad := a
		if ra >= 0 {
			bad = b
		}
		panic(newEvalError(KindTypeMismatch, "expected a number", bad))
	}
	rank := ra
	if rb > rank {
		rank = rb
	}
	return promoteTo(a, rank), promoteTo(b, rank)
}

func promoteTo(v Value, rank int) Value {
	switch {
	case numericRank(v) >= rank:
		return v
	case rank == 1: // Integer -> Rational: goarith numbers interoperate as-is.
		return Value{Tag: TagRational, Data: v.Data}
	case rank == 2: // -> Real
		return RealVal(ToFloat64(v))
	default: // -> Complex
		return ComplexVal(ToFloat64(v), 0)
	}
}

func isZeroExact(v Value) bool { return v.numberData().Cmp(zeroNumber) == 0 }

// NumAdd/NumSub/NumMul/NumDiv implement the tower's arithmetic, promoting
// both operands first and canonicalising the (possible) exact result
// downward. Division of an exact value by an exact zero raises
// DivideByZero; inexact zero division yields IEEE-754 Inf/NaN (spec.md §9).
func NumAdd(a, b Value) Value {
	x, y := Promote(a, b)
	switch x.Tag {
	case TagInteger, TagRational:
		return ExactFromNumber(x.numberData().Add(y.numberData()))
	case TagReal:
		return RealVal(x.realData() + y.realData())
	default:
		r := x.complexData() + y.complexData()
		return ComplexVal(real(r), imag(r))
	}
}

func NumSub(a, b Value) Value {
	x, y := Promote(a, b)
	switch x.Tag {
	case TagInteger, TagRational:
		return ExactFromNumber(x.numberData().Sub(y.numberData()))
	case TagReal:
		return RealVal(x.realData() - y.realData())
	default:
		r := x.complexData() - y.complexData()
		return ComplexVal(real(r), imag(r))
	}
}

func NumMul(a, b Value) Value {
	x, y := Promote(a, b)
	switch x.Tag {
	case TagInteger, TagRational:
		return ExactFromNumber(x.numberData().Mul(y.numberData()))
	case TagReal:
		return RealVal(x.realData() * y.realData())
	default:
		r := x.complexData() * y.complexData()
		return ComplexVal(real(r), imag(r))
	}
}

func NumDiv(a, b Value) Value {
	x, y := Promote(a, b)
	switch x.Tag {
	case TagInteger, TagRational:
		if isZeroExact(y) {
			panic(newEvalError(KindDivideByZero, "division by exact zero", b))
		}
		return ExactFromNumber(x.numberData().Div(y.numberData()))
	case TagReal:
		return RealVal(x.realData() / y.realData()) // IEEE-754 Inf/NaN on zero
	default:
		r := x.complexData() / y.complexData()
		return ComplexVal(real(r), imag(r))
	}
}

// NumCompare returns -1/0/1 for exact and real values. Complex values have
// no total order beyond equality; equality.go's Compare falls back to canonical
// printed form for Complex, as spec.md §4.1 prescribes for variants
// "without a natural order."
func NumCompare(a, b Value) int {
	x, y := Promote(a, b)
	switch x.Tag {
	case TagInteger, TagRational:
		return x.numberData().Cmp(y.numberData())
	case TagReal:
		switch {
		case x.realData() < y.realData():
			return -1
		case x.realData() > y.realData():
			return 1
		default:
			return 0
		}
	default:
		panic(newEvalError(KindTypeMismatch, "complex numbers are unordered", a))
	}
}

// NumEqv implements eqv?'s numeric case: equal magnitude AND equal
// exactness (spec.md §4.1 — "equal for primitive values of the same
// concrete type").
func NumEqv(a, b Value) bool {
	if isExact(a) != isExact(b) {
		return false
	}
	if a.Tag == TagComplex || b.Tag == TagComplex {
		return toComplex(a) == toComplex(b)
	}
	return NumCompare(a, b) == 0
}

func numIsNegative(v Value) bool {
	switch v.Tag {
	case TagInteger, TagRational:
		return v.numberData().Cmp(zeroNumber) < 0
	case TagReal:
		return v.realData() < 0
	default:
		return false
	}
}

func numAbs(v Value) Value {
	if numIsNegative(v) {
		return NumSub(IntegerVal(0), v)
	}
	return v
}

// numSign returns -1, 0, or 1.
func numSign(v Value) int {
	switch v.Tag {
	case TagInteger, TagRational:
		return v.numberData().Cmp(zeroNumber)
	case TagReal:
		switch {
		case v.realData() < 0:
			return -1
		case v.realData() > 0:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}
