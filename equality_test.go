package goscheme

import "testing"

func Test_EqvPrimitivesSameConcreteType(t *testing.T) {
	if !Eqv(SymbolVal("a"), SymbolVal("a")) {
		t.Fatalf("identical symbols should be eqv?")
	}
	if Eqv(IntegerVal(1), RealVal(1)) {
		t.Fatalf("1 and 1.0 differ in exactness, so must not be eqv?")
	}
}

func Test_EqvHeterogeneousTagsAlwaysUnequal(t *testing.T) {
	if Eqv(IntegerVal(1), StringVal("1")) {
		t.Fatalf("an integer and a string must never be eqv?")
	}
}

func Test_EqualStructuralOnAggregates(t *testing.T) {
	a := ListVal([]Value{IntegerVal(1), VectorVal([]Value{IntegerVal(2)})})
	b := ListVal([]Value{IntegerVal(1), VectorVal([]Value{IntegerVal(2)})})
	if !Equal(a, b) {
		t.Fatalf("structurally identical nested aggregates should be equal?")
	}
}

func Test_EqualHashTablesCompareByAssociationsNotOrder(t *testing.T) {
	a := HashTableVal()
	a.hashData().store.set(SymbolVal("x"), IntegerVal(1))
	a.hashData().store.set(SymbolVal("y"), IntegerVal(2))

	b := HashTableVal()
	b.hashData().store.set(SymbolVal("y"), IntegerVal(2))
	b.hashData().store.set(SymbolVal("x"), IntegerVal(1))

	if !Equal(a, b) {
		t.Fatalf("hash tables with the same associations in different insertion order should be equal?")
	}
}

func Test_CompareOrdersWithinVariant(t *testing.T) {
	if Compare(IntegerVal(1), IntegerVal(2)) >= 0 {
		t.Fatalf("1 should compare less than 2")
	}
	if Compare(StringVal("a"), StringVal("b")) >= 0 {
		t.Fatalf(`"a" should compare less than "b"`)
	}
}

func Test_CompareUsesStableVariantOrderBetweenTags(t *testing.T) {
	a, b := Compare(SymbolVal("x"), IntegerVal(1)), Compare(IntegerVal(1), SymbolVal("x"))
	if a == 0 || b == 0 {
		t.Fatalf("values of different variants must not compare equal")
	}
	if a != -b {
		t.Fatalf("Compare must be antisymmetric across variants: got %d and %d", a, b)
	}
}
