package goscheme

import "testing"

// P2: define followed by get in the same frame returns the defined value.
func Test_P2_DefineThenGet(t *testing.T) {
	e := Extend(Empty(), nil)
	e.Define(NsVar, "x", IntegerVal(1))
	v, err := e.Get(NsVar, "x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if Show(v) != "1" {
		t.Fatalf("got %s, want 1", Show(v))
	}
}

// P3: a child frame's define shadows the parent's binding without
// mutating it.
func Test_P3_Shadowing(t *testing.T) {
	parent := Extend(Empty(), nil)
	parent.Define(NsVar, "x", IntegerVal(1))
	child := Extend(parent, nil)
	child.Define(NsVar, "x", IntegerVal(2))

	cv, err := child.Get(NsVar, "x")
	if err != nil {
		t.Fatalf("child Get: %v", err)
	}
	if Show(cv) != "2" {
		t.Fatalf("child got %s, want 2", Show(cv))
	}

	pv, err := parent.Get(NsVar, "x")
	if err != nil {
		t.Fatalf("parent Get: %v", err)
	}
	if Show(pv) != "1" {
		t.Fatalf("parent got %s, want 1 (shadow must not mutate ancestor)", Show(pv))
	}
}

// P4: set! in a child frame updates the binding in the defining ancestor.
func Test_P4_SetPropagatesToDefiningAncestor(t *testing.T) {
	parent := Extend(Empty(), nil)
	parent.Define(NsVar, "x", IntegerVal(1))
	child := Extend(parent, nil)

	if err := child.Set(NsVar, "x", IntegerVal(42)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	pv, err := parent.Get(NsVar, "x")
	if err != nil {
		t.Fatalf("parent Get: %v", err)
	}
	if Show(pv) != "42" {
		t.Fatalf("parent got %s, want 42", Show(pv))
	}
}

// P5: aliasing — a binding that is a Pointer to an object held elsewhere,
// mutated through the pointer, is observed at the original location too.
func Test_P5_AliasingThroughPointer(t *testing.T) {
	x := Extend(Empty(), nil)
	x.Define(NsVar, "obj", VectorVal([]Value{IntegerVal(0), IntegerVal(0)}))

	y := Extend(Empty(), nil)
	y.Define(NsVar, "alias", PointerVal("obj", x))

	aliased, err := y.Get(NsVar, "alias")
	if err != nil {
		t.Fatalf("Get alias: %v", err)
	}
	resolved, err := Deref(aliased)
	if err != nil {
		t.Fatalf("Deref: %v", err)
	}
	resolved.vectorData().Elems[1] = IntegerVal(42)

	xv, err := x.Get(NsVar, "obj")
	if err != nil {
		t.Fatalf("Get obj: %v", err)
	}
	if Show(xv) != "#(0 42)" {
		t.Fatalf("got %s, want #(0 42)", Show(xv))
	}
}

// overwrite relocates an aliased object before writing a new value: the
// alias becomes the holder of the old object after the original binding
// is reassigned.
func Test_OverwriteRelocatesAliasedValue(t *testing.T) {
	x := Extend(Empty(), nil)
	x.Define(NsVar, "obj", VectorVal([]Value{IntegerVal(1)}))

	y := Extend(Empty(), nil)
	y.Define(NsVar, "alias", PointerVal("obj", x))

	x.Set(NsVar, "obj", IntegerVal(99))

	xv, _ := x.Get(NsVar, "obj")
	if Show(xv) != "99" {
		t.Fatalf("x.obj got %s, want 99", Show(xv))
	}

	yv, err := y.Get(NsVar, "alias")
	if err != nil {
		t.Fatalf("Get alias: %v", err)
	}
	resolved, err := Deref(yv)
	if err != nil {
		t.Fatalf("Deref alias: %v", err)
	}
	if Show(resolved) != "#(1)" {
		t.Fatalf("relocated alias got %s, want the pre-overwrite value #(1)", Show(resolved))
	}
}

// Set() on a binding that lives in an ancestor frame must record any
// resulting reverse alias against that ancestor, not against the
// call-site child frame, so a later overwrite of the pointee relocates
// into the frame that actually owns the binding.
func Test_SetOnAncestorRecordsAliasAgainstAncestorNotCallSite(t *testing.T) {
	ancestor := Extend(Empty(), nil)
	ancestor.Define(NsVar, "shared", IntegerVal(0))
	child := Extend(ancestor, nil)

	holder := Extend(Empty(), nil)
	holder.Define(NsVar, "obj", VectorVal([]Value{IntegerVal(1)}))

	if err := child.Set(NsVar, "shared", PointerVal("obj", holder)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	holder.Set(NsVar, "obj", IntegerVal(99))

	av, err := ancestor.Get(NsVar, "shared")
	if err != nil {
		t.Fatalf("ancestor Get shared: %v", err)
	}
	resolved, err := Deref(av)
	if err != nil {
		t.Fatalf("Deref: %v", err)
	}
	if Show(resolved) != "#(1)" {
		t.Fatalf("ancestor's shared should hold the relocated pre-overwrite value, got %s", Show(resolved))
	}
	if _, ok := child.bindings[nsName{NsVar, "shared"}]; ok {
		t.Fatalf("child must not gain a spurious local binding from the alias relocation")
	}
}

func Test_IsBoundVsIsRecBound(t *testing.T) {
	parent := Extend(Empty(), nil)
	parent.Define(NsVar, "x", IntegerVal(1))
	child := Extend(parent, nil)

	if child.IsBound(NsVar, "x") {
		t.Fatalf("x should not be frame-local to child")
	}
	if !child.IsRecBound(NsVar, "x") {
		t.Fatalf("x should be visible via the parent chain")
	}
}

func Test_GetUnboundReturnsUnboundVarError(t *testing.T) {
	e := Extend(Empty(), nil)
	_, err := e.Get(NsVar, "nope")
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindUnboundVar {
		t.Fatalf("expected KindUnboundVar, got %v", err)
	}
}

func Test_SetUnboundReturnsUnboundVarError(t *testing.T) {
	e := Extend(Empty(), nil)
	err := e.Set(NsVar, "nope", IntegerVal(1))
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindUnboundVar {
		t.Fatalf("expected KindUnboundVar, got %v", err)
	}
}

func Test_NamespacesAreIndependent(t *testing.T) {
	e := Extend(Empty(), nil)
	e.Define(NsVar, "x", IntegerVal(1))
	e.Define(NsMacro, "x", IntegerVal(2))

	v, err := e.Get(NsVar, "x")
	if err != nil || Show(v) != "1" {
		t.Fatalf("NsVar x: got %v, %v", v, err)
	}
	m, err := e.Get(NsMacro, "x")
	if err != nil || Show(m) != "2" {
		t.Fatalf("NsMacro x: got %v, %v", m, err)
	}
}

func Test_CopyDeepCopiesBindingsSharesPointers(t *testing.T) {
	e := Extend(Empty(), nil)
	e.Define(NsVar, "x", IntegerVal(1))
	c := e.Copy()
	c.Set(NsVar, "x", IntegerVal(2))

	ev, _ := e.Get(NsVar, "x")
	if Show(ev) != "1" {
		t.Fatalf("original mutated by copy's Set: got %s", Show(ev))
	}
	cv, _ := c.Get(NsVar, "x")
	if Show(cv) != "2" {
		t.Fatalf("copy got %s, want 2", Show(cv))
	}
}
