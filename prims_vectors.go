// prims_vectors.go — vector primitive procedures (SPEC_FULL.md §3.6).
//
// Grounded on the teacher's registerXBuiltins convention; Vector (value.go)
// is a mutable *Vector{Elems []Value}, so vector-set!/vector-fill! mutate
// in place, which is what env.go's aliasing protocol requires of any
// Object variant.
package goscheme

func registerVectorPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}
	requireVector := func(v Value) (*Vector, error) {
		if v.Tag != TagVector {
			return nil, errTypeMismatch("vector", v)
		}
		return v.vectorData(), nil
	}
	requireInt := func(v Value) (int, error) {
		if v.Tag != TagInteger {
			return 0, errTypeMismatch("integer", v)
		}
		return int(v.numberData().Float64()), nil
	}

	def("make-vector", func(args []Value) (Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return Value{}, errNumArgs(1, len(args))
		}
		n, err := requireInt(args[0])
		if err != nil {
			return Value{}, err
		}
		fill := NilVal()
		if len(args) == 2 {
			fill = args[1]
		}
		elems := make([]Value, n)
		for i := range elems {
			elems[i] = fill
		}
		return VectorVal(elems), nil
	})
	def("vector", func(args []Value) (Value, error) {
		elems := make([]Value, len(args))
		copy(elems, args)
		return VectorVal(elems), nil
	})
	def("vector-length", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		return IntegerVal(int64(len(v.Elems))), nil
	})
	def("vector-ref", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		i, err := requireInt(args[1])
		if err != nil {
			return Value{}, err
		}
		if i < 0 || i >= len(v.Elems) {
			return Value{}, newEvalErrorNoForm(KindDefault, "vector-ref: index out of range")
		}
		return v.Elems[i], nil
	})
	def("vector-set!", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		i, err := requireInt(args[1])
		if err != nil {
			return Value{}, err
		}
		if i < 0 || i >= len(v.Elems) {
			return Value{}, newEvalErrorNoForm(KindDefault, "vector-set!: index out of range")
		}
		v.Elems[i] = args[2]
		return NilVal(), nil
	})
	def("vector->list", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(v.Elems))
		copy(out, v.Elems)
		return ListVal(out), nil
	})
	def("list->vector", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagList {
			return Value{}, errTypeMismatch("list", oneOrZero(args))
		}
		elems := args[0].listElems()
		out := make([]Value, len(elems))
		copy(out, elems)
		return VectorVal(out), nil
	})
	def("vector-fill!", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		for i := range v.Elems {
			v.Elems[i] = args[1]
		}
		return NilVal(), nil
	})
	def("vector-copy", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		v, err := requireVector(args[0])
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(v.Elems))
		copy(out, v.Elems)
		return VectorVal(out), nil
	})
}
