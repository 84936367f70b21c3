package goscheme

import "testing"

func Test_IsTruthy(t *testing.T) {
	if False.IsTruthy() {
		t.Fatalf("#f must be falsy")
	}
	truthyCases := []Value{True, IntegerVal(0), EmptyList, NilVal(), StringVal("")}
	for _, v := range truthyCases {
		if !v.IsTruthy() {
			t.Fatalf("%s must be truthy: only #f is false", Show(v))
		}
	}
}

func Test_IsObject(t *testing.T) {
	objects := []Value{EmptyList, PairVal([]Value{IntegerVal(1)}, IntegerVal(2)),
		StringVal("s"), VectorVal(nil), HashTableVal(), PointerVal("x", Empty())}
	for _, v := range objects {
		if !v.IsObject() {
			t.Fatalf("%s (tag %d) should be an object", Show(v), v.Tag)
		}
	}
	nonObjects := []Value{IntegerVal(1), True, CharVal('a'), SymbolVal("s")}
	for _, v := range nonObjects {
		if v.IsObject() {
			t.Fatalf("%s (tag %d) should not be an object", Show(v), v.Tag)
		}
	}
}

func Test_TypeNameCoversEveryTag(t *testing.T) {
	for tag := TagSymbol; tag <= TagNil; tag++ {
		name := Value{Tag: tag}.typeName()
		if name == "" {
			t.Fatalf("tag %d produced an empty type name", tag)
		}
	}
}

func Test_ValuesValSingletonVsMultiple(t *testing.T) {
	vs := ValuesVal([]Value{IntegerVal(1), IntegerVal(2)})
	if vs.Tag != TagValues {
		t.Fatalf("expected TagValues")
	}
	if len(vs.valuesData()) != 2 {
		t.Fatalf("expected 2 packaged values, got %d", len(vs.valuesData()))
	}
}

func Test_EmptyListIsAnEmptyProperList(t *testing.T) {
	if EmptyList.Tag != TagList {
		t.Fatalf("EmptyList must be TagList")
	}
	if len(EmptyList.listElems()) != 0 {
		t.Fatalf("EmptyList must have no elements")
	}
}

func Test_VectorMutationInPlace(t *testing.T) {
	v := VectorVal([]Value{IntegerVal(1), IntegerVal(2)})
	v.vectorData().Elems[0] = IntegerVal(9)
	if Show(v) != "#(9 2)" {
		t.Fatalf("got %s, want #(9 2)", Show(v))
	}
}
