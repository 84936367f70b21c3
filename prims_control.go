// prims_control.go — control-flow primitive procedures (SPEC_FULL.md
// §3.6): apply, values, call-with-values, dynamic-wind, error.
//
// apply/call-with-values/dynamic-wind all re-enter the evaluator via the
// public Apply function (spec.md §6.2's re-entrant-evaluator contract),
// exercising the same activeTokens dynamic-extent bookkeeping (eval.go,
// continuation.go) that map/for-each (prims_pairs.go) do.
package goscheme

import "strings"

func registerControlPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}

	def("apply", func(args []Value) (Value, error) {
		if len(args) < 2 {
			return Value{}, errNumArgsAtLeast(2, len(args))
		}
		proc := args[0]
		last := args[len(args)-1]
		if last.Tag != TagList {
			return Value{}, errTypeMismatch("list", last)
		}
		callArgs := append([]Value{}, args[1:len(args)-1]...)
		callArgs = append(callArgs, last.listElems()...)
		return Apply(controlApplyEnv, proc, callArgs)
	})

	def("values", func(args []Value) (Value, error) {
		if len(args) == 1 {
			return args[0], nil
		}
		out := make([]Value, len(args))
		copy(out, args)
		return ValuesVal(out), nil
	})

	def("call-with-values", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		producer, consumer := args[0], args[1]
		result, err := Apply(controlApplyEnv, producer, nil)
		if err != nil {
			return Value{}, err
		}
		var consArgs []Value
		if result.Tag == TagValues {
			consArgs = result.valuesData()
		} else {
			consArgs = []Value{result}
		}
		return Apply(controlApplyEnv, consumer, consArgs)
	})

	def("dynamic-wind", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		before, thunk, after := args[0], args[1], args[2]
		if _, err := Apply(controlApplyEnv, before, nil); err != nil {
			return Value{}, err
		}
		result, thunkErr := Apply(controlApplyEnv, thunk, nil)
		if _, err := Apply(controlApplyEnv, after, nil); err != nil {
			return Value{}, err
		}
		if thunkErr != nil {
			return Value{}, thunkErr
		}
		return result, nil
	})

	def("error", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, newEvalErrorNoForm(KindDefault, "error")
		}
		msg := args[0]
		var b strings.Builder
		if msg.Tag == TagString {
			b.WriteString(string(*msg.stringData()))
		} else {
			b.WriteString(Show(msg))
		}
		for _, irritant := range args[1:] {
			b.WriteByte(' ')
			b.WriteString(Show(irritant))
		}
		return Value{}, newEvalErrorNoForm(KindDefault, b.String())
	})
}

// controlApplyEnv mirrors prims_pairs.go's mapApplyEnv: the re-entrant
// Apply calls here only need an *Env to satisfy Eval/Apply's signature for
// resolving symbols inside already-closed-over procedure bodies.
var controlApplyEnv = Extend(Empty(), nil)
