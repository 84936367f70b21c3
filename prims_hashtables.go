// prims_hashtables.go — hash-table primitive procedures (SPEC_FULL.md
// §3.6), operating on hashtable.go's htStore.
package goscheme

func registerHashTablePrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, PrimFnVal(name, fn))
	}
	requireTable := func(v Value) (*HashTable, error) {
		if v.Tag != TagHashTable {
			return nil, errTypeMismatch("hash-table", v)
		}
		return v.hashData(), nil
	}

	def("make-hash-table", func(args []Value) (Value, error) {
		return HashTableVal(), nil
	})
	def("hash-table-set!", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		t.store.set(args[1], args[2])
		return NilVal(), nil
	})
	def("hash-table-ref", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		v, ok := t.store.get(args[1])
		if !ok {
			return Value{}, newEvalErrorNoForm(KindDefault, "hash-table-ref: key not found")
		}
		return v, nil
	})
	def("hash-table-ref/default", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, errNumArgs(3, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		v, ok := t.store.get(args[1])
		if !ok {
			return args[2], nil
		}
		return v, nil
	})
	def("hash-table-delete!", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		t.store.delete(args[1])
		return NilVal(), nil
	})
	def("hash-table-contains?", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, errNumArgs(2, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		_, ok := t.store.get(args[1])
		return BoolVal(ok), nil
	})
	def("hash-table-keys", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		return ListVal(t.store.orderedKeys()), nil
	})
	def("hash-table-values", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		entries := t.store.entriesInOrder()
		out := make([]Value, len(entries))
		for i, e := range entries {
			out[i] = e.value
		}
		return ListVal(out), nil
	})
	def("hash-table->alist", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		entries := t.store.entriesInOrder()
		out := make([]Value, len(entries))
		for i, e := range entries {
			out[i] = consValue(e.key, e.value)
		}
		return ListVal(out), nil
	})
	def("hash-table-size", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		t, err := requireTable(args[0])
		if err != nil {
			return Value{}, err
		}
		return IntegerVal(int64(t.store.size())), nil
	})
}
