// env.go — lexically-scoped environment frames with two namespaces and
// mutation-aware aliasing (spec.md §3.2, §4.2).
//
// Grounded on the teacher's Env{parent, table} climbing Define/Set/Get
// (interpreter.go), generalized from one flat namespace to the two
// spec.md requires ("v" for variables, "m" for macros) and, unlike the
// teacher (which has no aliasing concept at all — MindScript has no
// Pointer variant), implementing the full reverse-pointer relocation
// protocol designed directly from spec.md §4.2.
package goscheme

// Namespace tags, per spec.md's Glossary.
const (
	NsVar   = "v"
	NsMacro = "m"
)

type nsName struct {
	ns   string
	name string
}

// cell is the mutable storage location a binding occupies. Its address is
// what set!/aliasing must reuse rather than reallocate — see Env.Set.
type cell struct {
	value Value
}

// Env is one frame in the lexical chain (spec.md §3.2). bindings maps
// (namespace,name) to a mutable cell; pointers maps (namespace,name) to
// the list of Pointer values that alias that binding (the reverse-alias
// set). An absent pointers entry is equivalent to the empty list.
type Env struct {
	parent   *Env
	bindings map[nsName]*cell
	pointers map[nsName][]Pointer
}

// Empty returns a fresh root frame with no parent (spec.md §6.1 empty-env).
func Empty() *Env {
	return &Env{
		bindings: make(map[nsName]*cell),
		pointers: make(map[nsName][]Pointer),
	}
}

// Extend returns a new child frame of parent pre-populated with entries,
// and an empty reverse-pointer set (spec.md §4.2 extend).
func Extend(parent *Env, entries map[nsName]Value) *Env {
	e := &Env{
		parent:   parent,
		bindings: make(map[nsName]*cell, len(entries)),
		pointers: make(map[nsName][]Pointer),
	}
	for k, v := range entries {
		e.bindings[k] = &cell{value: v}
	}
	return e
}

// ExtendVars is the common case of Extend: binding a set of variable names
// (namespace "v") to values in a fresh child frame, used by closure
// application, let, and letrec (spec.md §3.2 Lifecycle).
func ExtendVars(parent *Env, names []string, values []Value) *Env {
	entries := make(map[nsName]Value, len(names))
	for i, n := range names {
		entries[nsName{NsVar, n}] = values[i]
	}
	return Extend(parent, entries)
}

// Copy performs a deep copy of bindings (fresh cells, same values) but
// shares pointer lists by reference with the original, per spec.md §4.2:
// "pointers copied by reference to the same lists (rationale: aliasing
// relationships follow the originals)."
func (e *Env) Copy() *Env {
	c := &Env{
		parent:   e.parent,
		bindings: make(map[nsName]*cell, len(e.bindings)),
		pointers: e.pointers,
	}
	for k, cl := range e.bindings {
		c.bindings[k] = &cell{value: cl.value}
	}
	return c
}

// IsBound reports whether (ns,name) is defined in this frame only
// (spec.md §4.2 is-bound).
func (e *Env) IsBound(ns, name string) bool {
	_, ok := e.bindings[nsName{ns, name}]
	return ok
}

// IsRecBound walks the parent chain (spec.md §4.2 is-rec-bound).
func (e *Env) IsRecBound(ns, name string) bool {
	return e.FindEnv(ns, name) != nil
}

// FindEnv returns the nearest frame containing (ns,name), or nil.
func (e *Env) FindEnv(ns, name string) *Env {
	key := nsName{ns, name}
	for f := e; f != nil; f = f.parent {
		if _, ok := f.bindings[key]; ok {
			return f
		}
	}
	return nil
}

// Get reads (ns,name), searching the frame chain (spec.md §4.2 get).
func (e *Env) Get(ns, name string) (Value, error) {
	f := e.FindEnv(ns, name)
	if f == nil {
		return Value{}, errUnboundVar(ns, name)
	}
	return f.bindings[nsName{ns, name}].value, nil
}

// Define writes to the current frame, shadowing any parent binding
// (invariant I2). If name is already frame-local it behaves like Set: the
// aliasing protocol still applies to the overwrite (spec.md §4.2).
func (e *Env) Define(ns, name string, v Value) {
	key := nsName{ns, name}
	if _, ok := e.bindings[key]; ok {
		e.overwrite(e, key, v)
		return
	}
	stored := e.resolveStore(key, v)
	e.bindings[key] = &cell{value: stored}
}

// Set mutates the cell where the variable is found (invariant I3), not a
// new cell in the current frame. UnboundVar if the name is not visible
// anywhere in the chain.
func (e *Env) Set(ns, name string, v Value) error {
	target := e.FindEnv(ns, name)
	if target == nil {
		return errUnboundVar(ns, name)
	}
	e.overwrite(target, nsName{ns, name}, v)
	return nil
}

// resolveStore implements step 1 of the aliasing protocol (spec.md §4.2):
// if v is a Pointer to an object, record the reverse alias and store the
// pointer itself; otherwise dereference non-object pointers immediately
// and store the plain value.
func (e *Env) resolveStore(key nsName, v Value) Value {
	if v.Tag != TagPointer {
		return v
	}
	ptr := v.pointerData()
	target := ptr.Target
	pointee, err := target.Get(key.ns, ptr.Name)
	if err != nil || !pointee.IsObject() {
		// Non-object (or dangling) pointee: dereference immediately.
		if err == nil {
			return pointee
		}
		return v
	}
	pkey := nsName{key.ns, ptr.Name}
	target.pointers[pkey] = append(target.pointers[pkey], Pointer{Name: key.name, Target: e})
	return v
}

// overwrite implements steps 2-3 of the aliasing protocol on frame at
// key: relocate any reverse-aliased holders of the old value before
// writing the new one, then store the (possibly pointer-recording)
// resolved value.
func (e *Env) overwrite(frame *Env, key nsName, v Value) {
	stored := frame.resolveStore(key, v)

	if aliases := frame.pointers[key]; len(aliases) > 0 {
		old := frame.bindings[key].value
		first := aliases[0]
		firstKey := nsName{key.ns, first.Name}
		if fc, ok := first.Target.bindings[firstKey]; ok {
			fc.value = old
		} else {
			first.Target.bindings[firstKey] = &cell{value: old}
		}
		// Re-point every remaining alias at the new canonical holder.
		for _, rest := range aliases[1:] {
			restKey := nsName{key.ns, rest.Name}
			newPointer := PointerVal(first.Name, first.Target)
			if rc, ok := rest.Target.bindings[restKey]; ok {
				rc.value = newPointer
			} else {
				rest.Target.bindings[restKey] = &cell{value: newPointer}
			}
			first.Target.pointers[firstKey] = append(first.Target.pointers[firstKey], rest)
		}
		delete(frame.pointers, key)
	}

	if c, ok := frame.bindings[key]; ok {
		c.value = stored
	} else {
		frame.bindings[key] = &cell{value: stored}
	}
}

// Deref returns v unchanged unless it is a Pointer, in which case it reads
// through to the pointed-to binding (spec.md §4.2 deref).
func Deref(v Value) (Value, error) {
	if v.Tag != TagPointer {
		return v, nil
	}
	p := v.pointerData()
	return p.Target.Get(NsVar, p.Name)
}

// DerefDeep walks lists, pairs, vectors, and hash tables, dereferencing
// every leaf in place (spec.md §4.2 deref-deep), so a primitive receives
// the very aggregate its caller holds and a mutation it makes is visible
// through every binding of that aggregate. The evaluator calls this only
// when handing values to primitives that require concrete data.
func DerefDeep(v Value) (Value, error) {
	d, err := Deref(v)
	if err != nil {
		return Value{}, err
	}
	switch d.Tag {
	case TagList:
		elems := d.listElems()
		out := elems
		for i, x := range elems {
			var e error
			if out[i], e = DerefDeep(x); e != nil {
				return Value{}, e
			}
		}
		return d, nil
	case TagPair:
		p := d.pairData()
		head := p.Head
		for i, x := range p.Head {
			var e error
			if head[i], e = DerefDeep(x); e != nil {
				return Value{}, e
			}
		}
		tail, e := DerefDeep(p.Tail)
		if e != nil {
			return Value{}, e
		}
		p.Tail = tail
		return d, nil
	case TagVector:
		vec := d.vectorData()
		out := vec.Elems
		for i, x := range vec.Elems {
			var e error
			if out[i], e = DerefDeep(x); e != nil {
				return Value{}, e
			}
		}
		return d, nil
	case TagHashTable:
		src := d.hashData()
		dst := src
		for _, k := range src.store.orderedKeys() {
			val, _ := src.store.get(k)
			dk, e := DerefDeep(k)
			if e != nil {
				return Value{}, e
			}
			dv, e := DerefDeep(val)
			if e != nil {
				return Value{}, e
			}
			dst.store.set(dk, dv)
		}
		return d, nil
	default:
		return d, nil
	}
}
