// prims_pairs.go — list/pair primitive procedures (SPEC_FULL.md §3.6).
//
// Grounded on the teacher's registerXBuiltins convention; map/for-each are
// grounded on spec.md §6.2's re-entrant evaluator contract ("a primitive
// may call back into eval/apply mid-evaluation... any continuation
// captured during the nested call remains valid only for the extent of
// that nested call unless it escapes upward") — they call back into Apply,
// which is exactly the case continuation.go's activeTokens bookkeeping was
// built to attribute correctly.
package goscheme

func registerPairPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}

	def("cons", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		return consValue(args[0], args[1]), nil
	})
	def("car", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		return carOf(args[0])
	})
	def("cdr", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		return cdrOf(args[0])
	})
	def("set-car!", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		return setCarOf(args[0], args[1])
	})
	def("set-cdr!", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		return setCdrOf(args[0], args[1])
	})
	def("pair?", numericPredicate(func(v Value) bool {
		return v.Tag == TagPair || (v.Tag == TagList && len(v.listElems()) > 0)
	}))
	def("null?", numericPredicate(func(v Value) bool {
		return v.Tag == TagList && len(v.listElems()) == 0
	}))
	def("list", func(args []Value) (Value, error) {
		elems := make([]Value, len(args))
		copy(elems, args)
		return ListVal(elems), nil
	})
	def("list?", numericPredicate(func(v Value) bool { return v.Tag == TagList }))
	def("length", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagList {
			return Value{}, errTypeMismatch("list", oneOrZero(args))
		}
		return IntegerVal(int64(len(args[0].listElems()))), nil
	})
	def("append", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return EmptyList, nil
		}
		var out []Value
		for i, a := range args[:len(args)-1] {
			if a.Tag != TagList {
				return Value{}, errTypeMismatch("list", args[i])
			}
			out = append(out, a.listElems()...)
		}
		last := args[len(args)-1]
		if last.Tag == TagList {
			out = append(out, last.listElems()...)
			return ListVal(out), nil
		}
		return PairVal(out, last), nil
	})
	def("reverse", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagList {
			return Value{}, errTypeMismatch("list", oneOrZero(args))
		}
		elems := args[0].listElems()
		out := make([]Value, len(elems))
		for i, v := range elems {
			out[len(elems)-1-i] = v
		}
		return ListVal(out), nil
	})
	def("list-ref", func(args []Value) (Value, error) {
		if len(args) != 2 || args[0].Tag != TagList || args[1].Tag != TagInteger {
			return Value{}, errTypeMismatch("list and integer", oneOrZero(args))
		}
		elems := args[0].listElems()
		i := int(args[1].numberData().Float64())
		if i < 0 || i >= len(elems) {
			return Value{}, newEvalErrorNoForm(KindDefault, "list-ref: index out of range")
		}
		return elems[i], nil
	})
	def("list-tail", func(args []Value) (Value, error) {
		if len(args) != 2 || args[0].Tag != TagList || args[1].Tag != TagInteger {
			return Value{}, errTypeMismatch("list and integer", oneOrZero(args))
		}
		elems := args[0].listElems()
		i := int(args[1].numberData().Float64())
		if i < 0 || i > len(elems) {
			return Value{}, newEvalErrorNoForm(KindDefault, "list-tail: index out of range")
		}
		return ListVal(append([]Value{}, elems[i:]...)), nil
	})
	def("map", func(args []Value) (Value, error) { return mapLists(args) })
	def("for-each", func(args []Value) (Value, error) {
		if _, err := mapLists(args); err != nil {
			return Value{}, err
		}
		return NilVal(), nil
	})
}

func consValue(a, b Value) Value {
	if b.Tag == TagList {
		return ListVal(append([]Value{a}, b.listElems()...))
	}
	if b.Tag == TagPair {
		p := b.pairData()
		return PairVal(append([]Value{a}, p.Head...), p.Tail)
	}
	return PairVal([]Value{a}, b)
}

func carOf(v Value) (Value, error) {
	switch v.Tag {
	case TagList:
		elems := v.listElems()
		if len(elems) == 0 {
			return Value{}, errTypeMismatch("pair", v)
		}
		return elems[0], nil
	case TagPair:
		return v.pairData().Head[0], nil
	default:
		return Value{}, errTypeMismatch("pair", v)
	}
}

func cdrOf(v Value) (Value, error) {
	switch v.Tag {
	case TagList:
		elems := v.listElems()
		if len(elems) == 0 {
			return Value{}, errTypeMismatch("pair", v)
		}
		return ListVal(append([]Value{}, elems[1:]...)), nil
	case TagPair:
		p := v.pairData()
		if len(p.Head) == 1 {
			return p.Tail, nil
		}
		return PairVal(append([]Value{}, p.Head[1:]...), p.Tail), nil
	default:
		return Value{}, errTypeMismatch("pair", v)
	}
}

// setCarOf/setCdrOf mutate in place, so that aliases sharing the pair
// (env.go's Pointer/aliasing protocol) observe the change (spec.md §4.2).
func setCarOf(v, newCar Value) (Value, error) {
	switch v.Tag {
	case TagList:
		elems := v.listElems()
		if len(elems) == 0 {
			return Value{}, errTypeMismatch("pair", v)
		}
		elems[0] = newCar
		return NilVal(), nil
	case TagPair:
		v.pairData().Head[0] = newCar
		return NilVal(), nil
	default:
		return Value{}, errTypeMismatch("pair", v)
	}
}

func setCdrOf(v, newCdr Value) (Value, error) {
	switch v.Tag {
	case TagList:
		return Value{}, errTypeMismatch("mutable pair (not a proper list literal)", v)
	case TagPair:
		p := v.pairData()
		if len(p.Head) == 1 {
			p.Tail = newCdr
			return NilVal(), nil
		}
		if newCdr.Tag == TagList {
			p.Head = append(p.Head[:1], newCdr.listElems()...)
			p.Tail = EmptyList
		} else {
			p.Tail = newCdr
		}
		return NilVal(), nil
	default:
		return Value{}, errTypeMismatch("pair", v)
	}
}

// mapLists implements both map and for-each: (map proc list1 list2 ...),
// stopping at the shortest list, calling back into Apply per spec.md §6.2.
func mapLists(args []Value) (Value, error) {
	if len(args) < 2 {
		return Value{}, errNumArgsAtLeast(2, len(args))
	}
	proc := args[0]
	lists := args[1:]
	n := -1
	for _, l := range lists {
		if l.Tag != TagList {
			return Value{}, errTypeMismatch("list", l)
		}
		if n < 0 || len(l.listElems()) < n {
			n = len(l.listElems())
		}
	}
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		callArgs := make([]Value, len(lists))
		for j, l := range lists {
			callArgs[j] = l.listElems()[i]
		}
		r, err := Apply(mapApplyEnv, proc, callArgs)
		if err != nil {
			return Value{}, err
		}
		out = append(out, r)
	}
	return ListVal(out), nil
}

// mapApplyEnv is the environment map/for-each's re-entrant Apply calls run
// in. It only needs to resolve the closures already captured by proc, so
// an empty top frame suffices — Apply threads it through purely because
// Eval/Apply's signature requires an *Env for symbol lookups inside proc's
// own body, which proc's own captured Env (not this one) actually serves.
var mapApplyEnv = Extend(Empty(), nil)
