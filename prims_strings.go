// prims_strings.go — string primitive procedures (SPEC_FULL.md §3.6).
//
// Grounded on the teacher's registerXBuiltins convention. Strings are
// mutable []rune (value.go's StringVal), so string-set!/string-copy work
// in place the way the aliasing protocol (env.go) expects for any Object
// variant. string->number/number->string reuse reader.go's
// parseNumericLiteral and printer.go's showNumber rather than
// reimplementing numeric-literal syntax a second time.
package goscheme

import (
	"strconv"
	"strings"
)

func registerStringPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}
	requireString := func(v Value) (*[]rune, error) {
		if v.Tag != TagString {
			return nil, errTypeMismatch("string", v)
		}
		return v.stringData(), nil
	}
	requireInt := func(v Value) (int, error) {
		if v.Tag != TagInteger {
			return 0, errTypeMismatch("integer", v)
		}
		return int(v.numberData().Float64()), nil
	}

	def("string-length", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		return IntegerVal(int64(len(*s))), nil
	})
	def("string-ref", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		i, err := requireInt(args[1])
		if err != nil {
			return Value{}, err
		}
		if i < 0 || i >= len(*s) {
			return Value{}, newEvalErrorNoForm(KindDefault, "string-ref: index out of range")
		}
		return CharVal((*s)[i]), nil
	})
	def("string-set!", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		i, err := requireInt(args[1])
		if err != nil {
			return Value{}, err
		}
		if args[2].Tag != TagChar {
			return Value{}, errTypeMismatch("char", args[2])
		}
		if i < 0 || i >= len(*s) {
			return Value{}, newEvalErrorNoForm(KindDefault, "string-set!: index out of range")
		}
		(*s)[i] = args[2].charData()
		return NilVal(), nil
	})
	def("substring", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		start, err := requireInt(args[1])
		if err != nil {
			return Value{}, err
		}
		end, err := requireInt(args[2])
		if err != nil {
			return Value{}, err
		}
		if start < 0 || end > len(*s) || start > end {
			return Value{}, newEvalErrorNoForm(KindDefault, "substring: index out of range")
		}
		return StringVal(string((*s)[start:end])), nil
	})
	def("string-append", func(args []Value) (Value, error) {
		var b strings.Builder
		for _, a := range args {
			s, err := requireString(a)
			if err != nil {
				return Value{}, err
			}
			b.WriteString(string(*s))
		}
		return StringVal(b.String()), nil
	})
	def("string->list", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(*s))
		for i, r := range *s {
			out[i] = CharVal(r)
		}
		return ListVal(out), nil
	})
	def("list->string", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagList {
			return Value{}, errTypeMismatch("list", oneOrZero(args))
		}
		elems := args[0].listElems()
		rs := make([]rune, len(elems))
		for i, e := range elems {
			if e.Tag != TagChar {
				return Value{}, errTypeMismatch("char", e)
			}
			rs[i] = e.charData()
		}
		return StringVal(string(rs)), nil
	})
	def("string->symbol", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		return SymbolVal(string(*s)), nil
	})
	def("symbol->string", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagSymbol {
			return Value{}, errTypeMismatch("symbol", oneOrZero(args))
		}
		return StringVal(args[0].symbolName()), nil
	})
	def("string->number", func(args []Value) (Value, error) {
		if len(args) < 1 {
			return Value{}, errNumArgsAtLeast(1, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		text := string(*s)
		if len(args) == 2 {
			radix, err := requireInt(args[1])
			if err != nil {
				return Value{}, err
			}
			switch radix {
			case 16:
				text = "#x" + text
			case 8:
				text = "#o" + text
			case 2:
				text = "#b" + text
			}
		}
		v, ok := parseNumericLiteral(text)
		if !ok {
			return False, nil
		}
		return v, nil
	})
	def("number->string", func(args []Value) (Value, error) {
		if len(args) < 1 || !isNumeric(args[0]) {
			return Value{}, errTypeMismatch("number", oneOrZero(args))
		}
		if len(args) == 2 {
			radix, err := requireInt(args[1])
			if err != nil {
				return Value{}, err
			}
			if radix != 10 && args[0].Tag == TagInteger {
				n := int64(args[0].numberData().Float64())
				return StringVal(strconv.FormatInt(n, radix)), nil
			}
		}
		return StringVal(Show(args[0])), nil
	})
	def("string=?", func(args []Value) (Value, error) {
		return stringChain(args, requireString, func(a, b string) bool { return a == b })
	})
	def("string<?", func(args []Value) (Value, error) {
		return stringChain(args, requireString, func(a, b string) bool { return a < b })
	})
	def("string-copy", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		s, err := requireString(args[0])
		if err != nil {
			return Value{}, err
		}
		return StringVal(string(*s)), nil
	})
	def("make-string", func(args []Value) (Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return Value{}, errNumArgs(1, len(args))
		}
		n, err := requireInt(args[0])
		if err != nil {
			return Value{}, err
		}
		fill := ' '
		if len(args) == 2 {
			if args[1].Tag != TagChar {
				return Value{}, errTypeMismatch("char", args[1])
			}
			fill = args[1].charData()
		}
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = fill
		}
		return StringVal(string(rs)), nil
	})
}

func stringChain(args []Value, get func(Value) (*[]rune, error), ok func(a, b string) bool) (Value, error) {
	for i := 0; i < len(args)-1; i++ {
		a, err := get(args[i])
		if err != nil {
			return Value{}, err
		}
		b, err := get(args[i+1])
		if err != nil {
			return Value{}, err
		}
		if !ok(string(*a), string(*b)) {
			return False, nil
		}
	}
	return True, nil
}
