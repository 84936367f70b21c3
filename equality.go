// equality.go — eqv?/equal? and the total order used for hash-table keys
// and sorting (spec.md §4.1).
//
// Grounded on the teacher's sort-based canonical ordering of map keys
// (builtin_core.go imports "sort" to iterate maps deterministically for
// display); here that same instinct — fall back to comparing canonical
// printed form when a variant has no natural order — is promoted to a
// full total order per spec.md's explicit requirement.
package goscheme

import (
	"sort"
	"strings"
)

// Eqv implements value equality (spec.md §4.1 eqv?): equal for primitives
// of the same concrete type, delegating to structural equality for
// aggregates, heterogeneous types always unequal, and identity (or
// inequality, since Go closures/continuations/ports aren't otherwise
// comparable) for procedures/ports/continuations.
func Eqv(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagSymbol:
		return a.symbolName() == b.symbolName()
	case TagBool:
		return a.boolData() == b.boolData()
	case TagChar:
		return a.charData() == b.charData()
	case TagInteger, TagRational, TagReal, TagComplex:
		return NumEqv(a, b)
	case TagNil:
		return true
	case TagList, TagPair, TagVector, TagHashTable, TagString:
		return Equal(a, b)
	case TagPrimFn:
		return a.Data.(*PrimFn) == b.Data.(*PrimFn)
	case TagIOFn:
		return a.Data.(*IOFn) == b.Data.(*IOFn)
	case TagClosure:
		return a.Data.(*Closure) == b.Data.(*Closure)
	case TagContinuation:
		return a.Data.(*Continuation) == b.Data.(*Continuation)
	case TagPort:
		return a.Data.(*Port).handle == b.Data.(*Port).handle
	case TagPointer:
		pa, pb := a.pointerData(), b.pointerData()
		return pa.Name == pb.Name && pa.Target == pb.Target
	default:
		return false
	}
}

// Equal implements structural equality (spec.md §4.1 equal?): recurses
// into lists, pairs, vectors, hash tables; elementwise comparison. Two
// hash tables are equal iff they hold the same key/value associations,
// compared as the sorted sequence of canonical pairs (iteration order not
// consulted).
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		if isNumeric(a) && isNumeric(b) {
			return false // heterogeneous exactness/type still compares unequal for eqv-family checks
		}
		return false
	}
	switch a.Tag {
	case TagString:
		as, bs := *a.stringData(), *b.stringData()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	case TagList:
		ae, be := a.listElems(), b.listElems()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case TagPair:
		ap, bp := a.pairData(), b.pairData()
		if len(ap.Head) != len(bp.Head) {
			return false
		}
		for i := range ap.Head {
			if !Equal(ap.Head[i], bp.Head[i]) {
				return false
			}
		}
		return Equal(ap.Tail, bp.Tail)
	case TagVector:
		ae, be := a.vectorData().Elems, b.vectorData().Elems
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case TagHashTable:
		as, bs := a.hashData().store, b.hashData().store
		if as.size() != bs.size() {
			return false
		}
		aPairs, bPairs := canonicalPairs(as), canonicalPairs(bs)
		for i := range aPairs {
			if aPairs[i] != bPairs[i] {
				return false
			}
		}
		return true
	default:
		return Eqv(a, b)
	}
}

// canonicalPairs renders a hash table's entries as sorted "key\x00value"
// strings so equal? can compare two tables order-independently.
func canonicalPairs(s *htStore) []string {
	entries := s.entriesInOrder()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = Show(e.key) + "\x00" + Show(e.value)
	}
	sort.Strings(out)
	return out
}

// variantRank gives the stable variant-tag ordering used to order values
// of different variants (spec.md §4.1 Ordering: "Between variants, order
// by a stable variant-tag ordering").
func variantRank(v Value) int { return int(v.Tag) }

// Compare implements the total order required for hash-table keys and
// sorting (spec.md §4.1 Ordering): natural order within a variant,
// stable variant-tag order between variants, and canonical printed form
// as the fallback for variants with no natural order.
func Compare(a, b Value) int {
	if a.Tag != b.Tag {
		if isNumeric(a) && isNumeric(b) {
			return NumCompare(a, b)
		}
		ra, rb := variantRank(a), variantRank(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	}
	switch a.Tag {
	case TagInteger, TagRational, TagReal:
		return NumCompare(a, b)
	case TagComplex:
		return strings.Compare(Show(a), Show(b))
	case TagString:
		return strings.Compare(string(*a.stringData()), string(*b.stringData()))
	case TagSymbol:
		return strings.Compare(a.symbolName(), b.symbolName())
	case TagChar:
		return int(a.charData()) - int(b.charData())
	case TagBool:
		av, bv := 0, 0
		if a.boolData() {
			av = 1
		}
		if b.boolData() {
			bv = 1
		}
		return av - bv
	default:
		return strings.Compare(Show(a), Show(b))
	}
}
