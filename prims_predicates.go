// prims_predicates.go — type and equality predicates (SPEC_FULL.md §3.6).
//
// Grounded on the teacher's registerXBuiltins convention; eq?/eqv?/equal?
// delegate directly to equality.go's Eqv/Equal, which already implement
// spec.md §4.1's equality contract in full.
package goscheme

func registerPredicatePrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}

	binaryPred := func(name string, fn func(a, b Value) bool) {
		def(name, func(args []Value) (Value, error) {
			if len(args) != 2 {
				return Value{}, errNumArgs(2, len(args))
			}
			return BoolVal(fn(args[0], args[1])), nil
		})
	}
	binaryPred("eq?", Eqv)
	binaryPred("eqv?", Eqv)
	binaryPred("equal?", Equal)

	def("not", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		return BoolVal(!args[0].IsTruthy()), nil
	})

	tagPred := func(name string, tags ...ValueTag) {
		def(name, numericPredicate(func(v Value) bool {
			for _, t := range tags {
				if v.Tag == t {
					return true
				}
			}
			return false
		}))
	}
	tagPred("boolean?", TagBool)
	tagPred("symbol?", TagSymbol)
	tagPred("string?", TagString)
	tagPred("char?", TagChar)
	tagPred("vector?", TagVector)
	tagPred("procedure?", TagPrimFn, TagIOFn, TagClosure, TagContinuation)
	tagPred("number?", TagInteger, TagRational, TagReal, TagComplex)
	tagPred("integer?", TagInteger)
	tagPred("rational?", TagInteger, TagRational)
	tagPred("real?", TagInteger, TagRational, TagReal)
	tagPred("complex?", TagInteger, TagRational, TagReal, TagComplex)
}
