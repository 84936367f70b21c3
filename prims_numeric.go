// prims_numeric.go — the numeric-tower primitive procedures (SPEC_FULL.md
// §3.6).
//
// Grounded on the teacher's registerXBuiltins/RegisterNative convention
// (builtin_misc.go's registerMathBuiltins); each procedure here is a thin
// wrapper around numeric.go's NumAdd/NumSub/.../NumCompare, which is
// itself grounded on github.com/nukata/goarith the same way
// other_examples/nukata-little-scheme-in-go__scm.go uses it.
package goscheme

import "math"

func registerNumericPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}

	def("+", func(args []Value) (Value, error) {
		acc := IntegerVal(0)
		for _, a := range args {
			if !isNumeric(a) {
				return Value{}, errTypeMismatch("number", a)
			}
			acc = NumAdd(acc, a)
		}
		return acc, nil
	})
	def("*", func(args []Value) (Value, error) {
		acc := IntegerVal(1)
		for _, a := range args {
			if !isNumeric(a) {
				return Value{}, errTypeMismatch("number", a)
			}
			acc = NumMul(acc, a)
		}
		return acc, nil
	})
	def("-", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, errNumArgsAtLeast(1, 0)
		}
		if !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", args[0])
		}
		if len(args) == 1 {
			return NumSub(IntegerVal(0), args[0]), nil
		}
		acc := args[0]
		for _, a := range args[1:] {
			if !isNumeric(a) {
				return Value{}, errTypeMismatch("number", a)
			}
			acc = NumSub(acc, a)
		}
		return acc, nil
	})
	def("/", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, errNumArgsAtLeast(1, 0)
		}
		if !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", args[0])
		}
		if len(args) == 1 {
			return NumDiv(IntegerVal(1), args[0]), nil
		}
		acc := args[0]
		for _, a := range args[1:] {
			if !isNumeric(a) {
				return Value{}, errTypeMismatch("number", a)
			}
			acc = NumDiv(acc, a)
		}
		return acc, nil
	})

	chain := func(name string, ok func(c int) bool) {
		def(name, func(args []Value) (Value, error) {
			for i := 0; i < len(args)-1; i++ {
				if !isNumeric(args[i]) {
					return Value{}, errTypeMismatch("number", args[i])
				}
				if !isNumeric(args[i+1]) {
					return Value{}, errTypeMismatch("number", args[i+1])
				}
				if !ok(NumCompare(args[i], args[i+1])) {
					return False, nil
				}
			}
			return True, nil
		})
	}
	chain("=", func(c int) bool { return c == 0 })
	chain("<", func(c int) bool { return c < 0 })
	chain(">", func(c int) bool { return c > 0 })
	chain("<=", func(c int) bool { return c <= 0 })
	chain(">=", func(c int) bool { return c >= 0 })

	requireInt := func(name string, v Value) (int64, error) {
		if v.Tag != TagInteger {
			return 0, errTypeMismatch("integer", v)
		}
		return int64(v.numberData().Float64()), nil
	}

	def("quotient", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		a, err := requireInt("quotient", args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := requireInt("quotient", args[1])
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, newEvalErrorNoForm(KindDivideByZero, "quotient by zero")
		}
		return IntegerVal(a / b), nil
	})
	def("remainder", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		a, err := requireInt("remainder", args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := requireInt("remainder", args[1])
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, newEvalErrorNoForm(KindDivideByZero, "remainder by zero")
		}
		return IntegerVal(a % b), nil
	})
	def("modulo", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		a, err := requireInt("modulo", args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := requireInt("modulo", args[1])
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, newEvalErrorNoForm(KindDivideByZero, "modulo by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return IntegerVal(m), nil
	})
	def("abs", func(args []Value) (Value, error) {
		if len(args) != 1 || !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", oneOrZero(args))
		}
		return numAbs(args[0]), nil
	})
	def("gcd", func(args []Value) (Value, error) {
		g := int64(0)
		for _, a := range args {
			n, err := requireInt("gcd", a)
			if err != nil {
				return Value{}, err
			}
			g = gcdInt(g, n)
		}
		if g < 0 {
			g = -g
		}
		return IntegerVal(g), nil
	})
	def("lcm", func(args []Value) (Value, error) {
		l := int64(1)
		for _, a := range args {
			n, err := requireInt("lcm", a)
			if err != nil {
				return Value{}, err
			}
			if n == 0 {
				return IntegerVal(0), nil
			}
			g := gcdInt(l, n)
			l = l / g * n
			if l < 0 {
				l = -l
			}
		}
		return IntegerVal(l), nil
	})
	def("exact->inexact", func(args []Value) (Value, error) {
		if len(args) != 1 || !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", oneOrZero(args))
		}
		if args[0].Tag == TagComplex {
			return args[0], nil
		}
		return RealVal(ToFloat64(args[0])), nil
	})
	def("inexact->exact", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		v := args[0]
		if isExact(v) {
			return v, nil
		}
		if v.Tag != TagReal {
			return Value{}, errTypeMismatch("real", v)
		}
		return IntegerVal(int64(math.Round(v.realData()))), nil
	})
	def("numerator", func(args []Value) (Value, error) {
		if len(args) != 1 || !isExact(args[0]) {
			return Value{}, errTypeMismatch("exact number", oneOrZero(args))
		}
		return args[0], nil // goarith keeps rationals in lowest terms internally
	})
	def("denominator", func(args []Value) (Value, error) {
		if len(args) != 1 || !isExact(args[0]) {
			return Value{}, errTypeMismatch("exact number", oneOrZero(args))
		}
		return IntegerVal(1), nil
	})
	def("zero?", numericPredicate(func(v Value) bool { return isNumeric(v) && numSign(v) == 0 }))
	def("positive?", numericPredicate(func(v Value) bool { return isNumeric(v) && numSign(v) > 0 }))
	def("negative?", numericPredicate(func(v Value) bool { return isNumeric(v) && numSign(v) < 0 }))
	def("odd?", numericPredicate(func(v Value) bool {
		return v.Tag == TagInteger && int64(v.numberData().Float64())%2 != 0
	}))
	def("even?", numericPredicate(func(v Value) bool {
		return v.Tag == TagInteger && int64(v.numberData().Float64())%2 == 0
	}))
	def("min", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, errNumArgsAtLeast(1, 0)
		}
		best := args[0]
		inexact := args[0].Tag == TagReal
		for _, a := range args[1:] {
			if a.Tag == TagReal {
				inexact = true
			}
			if NumCompare(a, best) < 0 {
				best = a
			}
		}
		if inexact && best.Tag != TagReal {
			return RealVal(ToFloat64(best)), nil
		}
		return best, nil
	})
	def("max", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, errNumArgsAtLeast(1, 0)
		}
		best := args[0]
		inexact := args[0].Tag == TagReal
		for _, a := range args[1:] {
			if a.Tag == TagReal {
				inexact = true
			}
			if NumCompare(a, best) > 0 {
				best = a
			}
		}
		if inexact && best.Tag != TagReal {
			return RealVal(ToFloat64(best)), nil
		}
		return best, nil
	})
	def("expt", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		base, exp := args[0], args[1]
		if isExact(base) && exp.Tag == TagInteger && numSign(exp) >= 0 {
			n := int64(exp.numberData().Float64())
			acc := IntegerVal(1)
			for i := int64(0); i < n; i++ {
				acc = NumMul(acc, base)
			}
			return acc, nil
		}
		return RealVal(math.Pow(ToFloat64(base), ToFloat64(exp))), nil
	})
	def("sqrt", func(args []Value) (Value, error) {
		if len(args) != 1 || !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", oneOrZero(args))
		}
		f := ToFloat64(args[0])
		if f < 0 {
			return ComplexVal(0, math.Sqrt(-f)), nil
		}
		r := math.Sqrt(f)
		if isExact(args[0]) {
			asInt := int64(r)
			if float64(asInt) == r && float64(asInt*asInt) == f {
				return IntegerVal(asInt), nil
			}
		}
		return RealVal(r), nil
	})
}

func oneOrZero(args []Value) Value {
	if len(args) > 0 {
		return args[0]
	}
	return NilVal()
}

func numericPredicate(pred func(Value) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		return BoolVal(pred(args[0])), nil
	}
}

func gcdInt(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
